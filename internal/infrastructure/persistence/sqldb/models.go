package sqldb

import (
	"time"

	"github.com/shopspring/decimal"
)

// 以下是infrastructure层的数据模型，包含GORM tag
// domain层的实体不依赖GORM，Repository负责两者之间的转换

// UserModel GORM用户模型
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:150;not null;comment:用户名"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Email     string    `gorm:"size:254;comment:邮箱"`
	IsStaff   bool      `gorm:"not null;default:false;comment:是否管理员"`
	CreatedAt time.Time `gorm:"comment:注册时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// ProfileModel 用户档案，地址与手机号全局唯一
type ProfileModel struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"uniqueIndex;not null;comment:用户ID"`
	Address string `gorm:"uniqueIndex:idx_profiles_address;size:255;not null;comment:地址"`
	Phone   string `gorm:"uniqueIndex:idx_profiles_phone;size:20;not null;comment:手机号"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description string `gorm:"type:text;comment:分类描述"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 1. 价格使用decimal(8,2)存储
// 2. ISBN有唯一索引,防止重复
type BookModel struct {
	ID            uint            `gorm:"primaryKey"`
	Title         string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author        string          `gorm:"index:idx_search;size:100;not null;comment:作者"`
	ISBN          string          `gorm:"uniqueIndex;size:13;not null;comment:ISBN号"`
	Price         decimal.Decimal `gorm:"type:decimal(8,2);index;not null;comment:价格"`
	Stock         int             `gorm:"not null;default:0;comment:库存数量"`
	PublishedDate time.Time       `gorm:"type:date;index;not null;comment:出版日期"`
	CategoryID    uint            `gorm:"index;not null;comment:分类ID"`
}

func (BookModel) TableName() string {
	return "books"
}

// ReviewModel 同一用户对同一本书只有一条评价
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_reviews_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_reviews_user_book;index;not null;comment:图书ID"`
	Rating    int       `gorm:"not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评论"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	User      UserModel `gorm:"foreignKey:UserID"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// OrderModel GORM订单模型,与OrderItemModel是一对多关系
type OrderModel struct {
	ID         uint             `gorm:"primaryKey"`
	UserID     uint             `gorm:"index;not null;comment:买家用户ID"`
	TotalPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0;comment:订单总金额"`
	Status     string           `gorm:"index;size:20;not null;default:pending;comment:订单状态(pending/shipped/delivered)"`
	OrderDate  time.Time        `gorm:"index;not null;comment:下单时间"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 记录下单时的价格快照(PriceAtPurchase)
type OrderItemModel struct {
	ID              uint            `gorm:"primaryKey"`
	OrderID         uint            `gorm:"index;not null;comment:订单ID"`
	BookID          uint            `gorm:"index;not null;comment:图书ID"`
	Quantity        int             `gorm:"not null;comment:购买数量"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(8,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
