package domain

type Product struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Category      string  `db:"category" json:"category"`
	Price         float64 `db:"price" json:"price"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	Description   string  `db:"description" json:"description"`
	Featured      bool    `db:"featured" json:"featured"`
}

// ProductInput is the full set of writable product fields. Update writes every
// field, so a zero value here overwrites whatever was stored before.
type ProductInput struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	Featured      bool    `json:"featured"`
}

type Customer struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Email        string  `db:"email" json:"email"`
	Phone        string  `db:"phone" json:"phone"`
	Address      Address `db:"address" json:"address"`
	RegisteredAt string  `db:"registration_date" json:"registered_at"`
	Newsletter   bool    `db:"newsletter_opt_in" json:"newsletter"`
}

type CustomerInput struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address    Address `json:"address"`
	Newsletter bool    `json:"newsletter"`
}

type Order struct {
	ID          int64   `db:"id" json:"id"`
	CustomerID  *int64  `db:"customer_id" json:"customer_id"`
	Status      string  `db:"status" json:"status"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// OrderRow is an order as shown in the browser, with the customer resolved to a label.
type OrderRow struct {
	Order
	CustomerName string `json:"customer"`
}

// OrderInput carries the writable order fields. TotalAmount is stored as given
// and is never derived from the order's items.
type OrderInput struct {
	CustomerID  *int64  `json:"customer_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderItem struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}

// OrderItemRow is an item line with the product name and line total.
type OrderItemRow struct {
	OrderItem
	ProductName string  `db:"product_name" json:"product"`
	Total       float64 `db:"total" json:"total"`
}

// OrderItemInput: Price is captured at the time the item is added and does not
// follow later product price changes.
type OrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Choice is one entry of a picker: a display label and the value it stands for.
type Choice[T any] struct {
	Label   string `json:"label"`
	Payload T      `json:"payload"`
}

// ProductRef lets a product picker pre-fill the unit price of a new item.
type ProductRef struct {
	ID    int64   `json:"id"`
	Price float64 `json:"price"`
}

type Summary struct {
	TotalProducts  int        `json:"total_products"`
	TotalCustomers int        `json:"total_customers"`
	TotalOrders    int        `json:"total_orders"`
	TotalSales     float64    `json:"total_sales"`
	LowStock       int        `json:"low_stock"`
	RecentOrders   []OrderRow `json:"recent_orders"`
}

// Category is a distinct product category with the number of products in it.
type Category struct {
	Name     string `db:"name" json:"name"`
	Products int    `db:"products" json:"products"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
