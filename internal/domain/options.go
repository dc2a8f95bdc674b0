package domain

// StoreOption is one entry of the store reference list.
type StoreOption struct {
	Store string `json:"store" db:"store"`
}

// ShopTypeOption is one entry of the shop-type reference list.
type ShopTypeOption struct {
	ShopType string `json:"shop_type" db:"shop_type"`
}

// TranTypeOption is one entry of the transaction-type reference list.
type TranTypeOption struct {
	TranType string `json:"tran_type" db:"tran_type"`
}
