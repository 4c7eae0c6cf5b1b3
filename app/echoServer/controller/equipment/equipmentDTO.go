package equipment

type CreateEquipmentReq struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gt=0"`
	Quantity    int64   `json:"quantity" validate:"gte=0"`
	Available   bool    `json:"available"`
}

type SetAvailabilityReq struct {
	Available *bool `json:"available" validate:"required"`
}
