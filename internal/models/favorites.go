package models

// FavoriteKind classifies what a favorite bookmarks.
type FavoriteKind string

const (
	FavoriteBus  FavoriteKind = "bus"
	FavoriteStop FavoriteKind = "stop"
)

func (k FavoriteKind) Valid() bool {
	return k == FavoriteBus || k == FavoriteStop
}

// Favorite is a bookmarked bus line or stop owned by one anonymous device
// identity. The (OwnerID, Kind, TargetID) tuple is unique among live
// records; the check happens before insert, not in storage.
type Favorite struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"ownerId"`
	Kind      FavoriteKind `json:"kind"`
	TargetID  string       `json:"targetId"`
	Name      string       `json:"name"`
	CreatedAt int64        `json:"createdAt"` // unix milliseconds; zero means unknown and sorts last
}
