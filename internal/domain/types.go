package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries authenticated actor info when available.
// CompanyID is zero for platform operators.
type RequestContext struct {
	UserID    ID     `json:"userId"`
	Role      string `json:"role"`
	CompanyID ID     `json:"companyId"`
}

// Roles understood by the authorization layer.
const (
	RoleOperator     = "operator"
	RoleCompanyAdmin = "company_admin"
	RoleCustomer     = "customer"
)

// CanActFor reports whether the actor may write resources owned by the
// given company. Operators may act for any company; company admins only
// for their own. Cross-company writes are never permitted.
func (rc RequestContext) CanActFor(companyID int64) bool {
	if rc.Role == RoleOperator {
		return true
	}
	return rc.CompanyID != 0 && int64(rc.CompanyID) == companyID
}
