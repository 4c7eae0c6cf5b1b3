package model

import "time"

type Review struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipment_id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
