package model

import (
	"fmt"
)

// Account is the role a user acts under. Users are stored with flat role and
// approval columns; NewAccount is the only way to lift them into a variant,
// so combinations such as an admin awaiting approval never reach a handler.
type Account interface {
	Role() Role
	UserID() int64
	isAccount()
}

type CustomerAccount struct {
	ID int64
}

type SellerAccount struct {
	ID       int64
	Approval ApprovalStatus
}

type DeliveryBoyAccount struct {
	ID       int64
	Approval ApprovalStatus
}

type AdminAccount struct {
	ID int64
}

func (a CustomerAccount) Role() Role    { return RoleCustomer }
func (a SellerAccount) Role() Role      { return RoleSeller }
func (a DeliveryBoyAccount) Role() Role { return RoleDeliveryBoy }
func (a AdminAccount) Role() Role       { return RoleAdmin }

func (a CustomerAccount) UserID() int64    { return a.ID }
func (a SellerAccount) UserID() int64      { return a.ID }
func (a DeliveryBoyAccount) UserID() int64 { return a.ID }
func (a AdminAccount) UserID() int64       { return a.ID }

func (CustomerAccount) isAccount()    {}
func (SellerAccount) isAccount()      {}
func (DeliveryBoyAccount) isAccount() {}
func (AdminAccount) isAccount()       {}

// CanSell reports whether the seller may list products.
func (a SellerAccount) CanSell() bool {
	return a.Approval == ApprovalApproved
}

// CanDeliver reports whether the delivery boy may be assigned orders.
func (a DeliveryBoyAccount) CanDeliver() bool {
	return a.Approval == ApprovalApproved
}

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// NewAccount builds the role variant for a stored user row.
func NewAccount(userID int64, role Role, approval ApprovalStatus) (Account, error) {
	if !approval.Valid() {
		return nil, fmt.Errorf("user %d: unknown approval status %q", userID, approval)
	}
	switch role {
	case RoleCustomer:
		if approval != ApprovalApproved {
			return nil, fmt.Errorf("user %d: customer with approval status %q", userID, approval)
		}
		return CustomerAccount{ID: userID}, nil
	case RoleAdmin:
		if approval != ApprovalApproved {
			return nil, fmt.Errorf("user %d: admin with approval status %q", userID, approval)
		}
		return AdminAccount{ID: userID}, nil
	case RoleSeller:
		return SellerAccount{ID: userID, Approval: approval}, nil
	case RoleDeliveryBoy:
		return DeliveryBoyAccount{ID: userID, Approval: approval}, nil
	default:
		return nil, fmt.Errorf("user %d: unknown role %q", userID, role)
	}
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User    User
	Account Account
}

func (p Principal) UserID() int64 {
	return p.User.ID
}

func (p Principal) IsAdmin() bool {
	_, ok := p.Account.(AdminAccount)
	return ok
}

// AccountView is the JSON shape of a user with its role details.
type AccountView struct {
	User
	Seller      *ApprovalView `json:"seller,omitempty"`
	DeliveryBoy *ApprovalView `json:"deliveryBoy,omitempty"`
}

type ApprovalView struct {
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
}

func (p Principal) View() AccountView {
	view := AccountView{User: p.User}
	switch acc := p.Account.(type) {
	case SellerAccount:
		view.Seller = &ApprovalView{ApprovalStatus: acc.Approval}
	case DeliveryBoyAccount:
		view.DeliveryBoy = &ApprovalView{ApprovalStatus: acc.Approval}
	}
	return view
}
