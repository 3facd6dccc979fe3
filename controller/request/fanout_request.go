package request

// DispatchReq triggers one synchronous fan-out pass
type DispatchReq struct {
	SenderID int64  `json:"senderId"`
	Sender   string `json:"sender" binding:"required"`
	Room     string `json:"room" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// BanReq bans a named user in a room
type BanReq struct {
	Name   string `json:"name" binding:"required"`
	Room   string `json:"room" binding:"required"`
	Reason string `json:"reason"`
}

// UnbanReq removes a room-level ban
type UnbanReq struct {
	Name string `json:"name" binding:"required"`
	Room string `json:"room" binding:"required"`
}
