package entity

import "time"

// EmailTemplate is a reusable outbound email with an optional PDF attachment
// stored in blob storage.
type EmailTemplate struct {
	ID             string    `json:"id" firestore:"id"`
	Name           string    `json:"name" firestore:"name"`
	Subject        string    `json:"subject" firestore:"subject"`
	BodyHTML       string    `json:"body_html" firestore:"bodyHtml"`
	AttachmentURL  string    `json:"attachment_url,omitempty" firestore:"attachmentUrl,omitempty"`
	AttachmentName string    `json:"attachment_name,omitempty" firestore:"attachmentName,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}
