package entity

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a donation request.
// The flow is strictly pending -> inprogress -> done.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "inprogress"
	RequestDone       RequestStatus = "done"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestInProgress, RequestDone:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// CanTransition reports whether a request may move from s to next.
// done is terminal and backward moves are not allowed.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	switch s {
	case RequestPending:
		return next == RequestInProgress
	case RequestInProgress:
		return next == RequestDone
	}
	return false
}

// DonationRequest is a blood donation solicitation tied to a blood group
// and a location, owned by the requester account.
type DonationRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterName  string             `bson:"requester_name" json:"requester_name"`
	RequesterEmail string             `bson:"requester_email" json:"requester_email"`
	RecipientName  string             `bson:"recipient_name" json:"recipient_name"`
	BloodGroup     string             `bson:"blood_group" json:"blood_group"`
	District       string             `bson:"district" json:"district"`
	Upazila        string             `bson:"upazila" json:"upazila"`
	Hospital       string             `bson:"hospital,omitempty" json:"hospital,omitempty"`
	Message        string             `bson:"message,omitempty" json:"message,omitempty"`
	Status         RequestStatus      `bson:"request_status" json:"request_status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
