package types

// OperatorInfo là thông tin operator trong JWT và gin context
type OperatorInfo struct {
	OperatorID string `json:"operatorid"`
	PropertyID string `json:"propertyid,omitempty"`
	Role       int    `json:"role"`
}

// CanAccess kiểm tra operator có quyền trên property không; admin không gắn property thì được mọi property
func (o OperatorInfo) CanAccess(propertyID string) bool {
	if o.PropertyID == "" {
		return true
	}
	return o.PropertyID == propertyID
}
