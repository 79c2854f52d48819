package domain

import "time"

type CarId = string

// Car is a marketplace listing. OwnerId is set at creation and never
// reassigned; only the owning account may update or delete the listing.
type Car struct {
	Id          CarId     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"` // opaque URLs returned by the media host
	OwnerId     UserId    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CarWithOwner augments a listing with the owner's email for browse views.
type CarWithOwner struct {
	Car
	OwnerEmail string `json:"ownerEmail"`
}

// CarDraft holds the mutable listing fields as submitted by a client.
type CarDraft struct {
	Title       string
	Description string
	Tags        []string
	Images      []string
}
