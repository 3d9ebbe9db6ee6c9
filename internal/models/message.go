package models

import "time"

// Message is a direct message between two users. IsRead transitions
// false to true only, and only when the receiver views the conversation.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Content    string    `json:"content" gorm:"type:text"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=2000"`
}

// MessageView is the shaped representation of a message returned by the API
type MessageView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Sender    UserView  `json:"sender"`
	Receiver  UserView  `json:"receiver"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}
