package entity

import "time"

// Lead statuses move through the pipeline in order; "won" and "lost" are terminal.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

type Lead struct {
	ID         string    `json:"id" firestore:"id"`
	Name       string    `json:"name" firestore:"name"`
	Email      string    `json:"email" firestore:"email"`
	Phone      string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Company    string    `json:"company,omitempty" firestore:"company,omitempty"`
	Status     string    `json:"status" firestore:"status"`
	AssignedTo string    `json:"assigned_to,omitempty" firestore:"assignedTo,omitempty"` // seller id
	Notes      string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
