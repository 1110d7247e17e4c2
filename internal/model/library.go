package model

import "time"

// WishlistEntry marks a game as wishlisted by a user
// (`user_game_wishlists`).  Presence of the row is the flag.
type WishlistEntry struct {
	UserID int64 // user_game_wishlists.user_id
	GameID int64 // user_game_wishlists.game_id
}

// CartEntry is a game placed in a user's cart (`cart_games`).  When
// ReceivingUserID differs from CartUserID the entry is a gift for
// somebody else and does not count as "in cart" for the purchaser.
type CartEntry struct {
	ID              int64     // cart_games.id
	CartUserID      int64     // cart_games.cart_user_id
	ReceivingUserID int64     // cart_games.receiving_user_id
	GameID          int64     // cart_games.game_id
	AddedOn         time.Time // cart_games.added_on
}

// ForSelf reports whether the entry was added by userID for userID.
func (c CartEntry) ForSelf(userID int64) bool {
	return c.CartUserID == userID && c.ReceivingUserID == userID
}

// OrderItem is a purchased game line (`order_items`).  Digital
// ownership is an item with PhysicallyOwned set to false.
type OrderItem struct {
	ID              int64 // order_items.id
	OrderID         int64 // order_items.order_id
	OwnerUserID     int64 // order_items.owner_user_id
	GameID          int64 // order_items.game_id
	PhysicallyOwned bool  // order_items.physically_owned
}
