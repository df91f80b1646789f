package models

// View-model projections returned by the read handlers. Each listing type
// gets an explicit struct so computed fields (isFavorited, favoritedCount...)
// never leak back into the persistence layer.

// RestaurantListItem is one row of the paginated restaurant listing.
type RestaurantListItem struct {
	Restaurant
	IsFavorited bool `json:"is_favorited"`
	IsLiked     bool `json:"is_liked"`
}

// RestaurantDetail is the full detail view of a restaurant.
type RestaurantDetail struct {
	Restaurant
	IsFavorited bool `json:"is_favorited"`
	IsLiked     bool `json:"is_liked"`
}

// FeedRestaurant is one row of the newest-restaurants feed.
type FeedRestaurant struct {
	Restaurant
}

// TopRestaurant is one row of the favorited-count ranking.
type TopRestaurant struct {
	Restaurant
	FavoritedCount int  `json:"favorited_count"`
	IsFavorited    bool `json:"is_favorited"`
}

// UserProfile is the profile view of a user, annotated with the viewer's
// follow state.
type UserProfile struct {
	User
	IsFollowed bool `json:"is_followed"`
}

// TopUser is one row of the follower-count ranking.
type TopUser struct {
	User
	FollowerCount int  `json:"follower_count"`
	IsFollowed    bool `json:"is_followed"`
}

// CommentedRestaurant is one distinct restaurant a user has commented on,
// reduced to what the profile page renders.
type CommentedRestaurant struct {
	RestaurantID uint   `json:"restaurant_id"`
	Image        string `json:"image"`
}
