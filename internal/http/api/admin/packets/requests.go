package packets

// CreateBoardRequest registers a new athan display board.
type CreateBoardRequest struct {
	Name      string  `json:"name" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Timezone  string  `json:"timezone" binding:"required"`
	Method    int     `json:"method"`
	School    int     `json:"school"`
}

type UpdateBoardRequest struct {
	Name      *string  `json:"name"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timezone  *string  `json:"timezone"`
	Method    *int     `json:"method"`
	School    *int     `json:"school"`
}
