package constants

// Operator roles
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleStaff   = 3
)

// Confirmation code
const (
	ConfirmationCodePrefix   = "SD-"
	ConfirmationCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ConfirmationCodeLength   = 5
	ConfirmationCodeAttempts = 10
)

// Inventory
const (
	DefaultInventoryWindowDays = 365
	InventoryUpsertBatchSize   = 100
)

// Guest limits
const (
	MaxAdults   = 10
	MaxChildren = 10
)

// Reviews
const (
	ReviewTokenBytes       = 24
	ReviewTokenValidDays   = 30
	ReviewRequestDelayDays = 2
	ReviewMinBodyLength    = 10
)

// Redis keys
const (
	AvailabilityCachePrefix = "availability:"
	// thế hệ cache availability theo property, tăng mỗi lần invalidate
	AvailabilityGenerationPrefix = "availability_gen:"
	GuestSearchPrefix            = "guest_search:"
)

// Messages trả về cho khách, dùng chung cho pre-check và race để không lộ timing
const (
	MsgUnavailable       = "No availability for the requested dates."
	MsgUnexpected        = "An unexpected error occurred."
	MsgOutsideWindow     = "outside_inventory_window"
	MsgRoomTypeNotFound  = "Room type not found."
	MsgPropertyNotFound  = "Property not found."
	MsgReservationAbsent = "Reservation not found."
	MsgReviewLinkInvalid = "Invalid review link."
	MsgReviewNotFound    = "Review not found."
)
