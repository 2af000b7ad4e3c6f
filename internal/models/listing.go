package models

import "time"

// Category is the fixed listing taxonomy. Every listing carries exactly
// one category; Other is the catch-all.
type Category string

const (
	CategoryGoggles       Category = "Goggles"
	CategoryCompleteSetup Category = "Complete Setup"
	CategoryControllers   Category = "Controllers"
	CategoryBatteries     Category = "Batteries"
	CategoryElectronics   Category = "Electronics"
	CategoryFrames        Category = "Frames"
	CategoryRacing        Category = "Racing"
	CategoryFreestyle     Category = "Freestyle"
	CategoryCinematic     Category = "Cinematic"
	CategoryAccessories   Category = "Accessories"
	CategoryOther         Category = "Other"
)

// Listing is a for-sale item detected from a single group message.
// The ID is the originating message ID, so re-processing the same
// message can never yield a second listing. A listing is immutable
// after detection except for the IsSold flip.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Seller      string    `json:"seller"`
	Location    string    `json:"location"`
	TimePosted  time.Time `json:"timePosted"`
	IsSold      bool      `json:"isSold"`
	Category    Category  `json:"category"`
	GroupID     string    `json:"groupId"`
	MessageID   string    `json:"messageId"`
}
