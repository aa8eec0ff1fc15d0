package mysql

import (
	"time"
)

// 设计说明：
// 1. 这里是infrastructure层的数据模型，包含GORM tag
// 2. domain层实体不依赖GORM，Repository负责两者转换
// 3. 目录数据一律硬删除，级联由Repository在事务中显式完成，
//    外键同时声明ON DELETE CASCADE兜底

// UserModel 用户表
type UserModel struct {
	ID        uint          `gorm:"primaryKey"`
	Email     string        `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string        `gorm:"size:255;not null;comment:密码(bcrypt)"`
	Nickname  string        `gorm:"size:50;not null;comment:昵称"`
	Reviews   []ReviewModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders    []OrderModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

// PublisherModel 出版社表
type PublisherModel struct {
	ID              uint        `gorm:"primaryKey"`
	Name            string      `gorm:"uniqueIndex;size:100;not null;comment:名称"`
	Location        string      `gorm:"size:200;not null;comment:所在地"`
	EstablishedYear int         `gorm:"not null;comment:成立年份"`
	Website         *string     `gorm:"size:200;comment:官网"`
	ContactEmail    *string     `gorm:"size:254;comment:联系邮箱"`
	Books           []BookModel `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PublisherModel) TableName() string { return "publishers" }

// AuthorModel 作者表
type AuthorModel struct {
	ID          uint              `gorm:"primaryKey"`
	FirstName   string            `gorm:"size:50;not null"`
	LastName    string            `gorm:"size:50;not null"`
	Nationality *string           `gorm:"size:50"`
	BookLinks   []BookAuthorModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AuthorModel) TableName() string { return "authors" }

// GenreModel 分类表
type GenreModel struct {
	ID          uint             `gorm:"primaryKey"`
	Name        string           `gorm:"uniqueIndex;size:50;not null"`
	Description string           `gorm:"type:text"`
	BookLinks   []BookGenreModel `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GenreModel) TableName() string { return "genres" }

// BookModel 图书表
// 价格以分存储；出版日期为DATE，统一按UTC零点读写
type BookModel struct {
	ID            uint              `gorm:"primaryKey"`
	Title         string            `gorm:"index;size:100;not null;comment:书名"`
	PublisherID   uint              `gorm:"index;not null;comment:出版社ID"`
	PublishedDate time.Time         `gorm:"type:date;index;not null;comment:出版日期"`
	Price         int64             `gorm:"index;not null;comment:价格(分)"`
	StockQuantity int               `gorm:"not null;default:0;comment:库存数量"`
	Description   string            `gorm:"type:text;comment:图书描述"`
	CoverKey      string            `gorm:"size:255;comment:封面对象key"`
	AuthorLinks   []BookAuthorModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	GenreLinks    []BookGenreModel  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Reviews       []ReviewModel     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	OrderItems    []OrderItemModel  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BookModel) TableName() string { return "books" }

// BookAuthorModel 图书-作者关联
type BookAuthorModel struct {
	BookID   uint `gorm:"primaryKey;autoIncrement:false"`
	AuthorID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (BookAuthorModel) TableName() string { return "book_authors" }

// BookGenreModel 图书-分类关联，记录关联创建时间
type BookGenreModel struct {
	ID        uint `gorm:"primaryKey"`
	BookID    uint `gorm:"uniqueIndex:uk_book_genre;not null"`
	GenreID   uint `gorm:"uniqueIndex:uk_book_genre;index;not null"`
	CreatedAt time.Time
}

func (BookGenreModel) TableName() string { return "book_genres" }

// ReviewModel 书评表
type ReviewModel struct {
	ID         uint   `gorm:"primaryKey"`
	BookID     uint   `gorm:"index;not null"`
	UserID     uint   `gorm:"index;not null"`
	ReviewText string `gorm:"size:200;not null"`
	Rating     int    `gorm:"not null;comment:评分1-5"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ReviewModel) TableName() string { return "reviews" }

// OrderModel 订单表
type OrderModel struct {
	ID          uint             `gorm:"primaryKey"`
	OrderNo     string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID      uint             `gorm:"index;not null;comment:买家用户ID"`
	TotalPrice  int64            `gorm:"not null;comment:订单总金额(分)"`
	Status      string           `gorm:"size:1;index;not null;default:P;comment:状态(P待处理C完成F失败R退款)"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	OrderedDate time.Time        `gorm:"index;not null;comment:下单时间"`
	UpdatedAt   time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细表，UnitPrice为下单时单价快照
type OrderItemModel struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null"`
	BookID    uint  `gorm:"index;not null"`
	Quantity  int   `gorm:"not null;default:1"`
	UnitPrice int64 `gorm:"not null;comment:下单时单价(分)"`
}

func (OrderItemModel) TableName() string { return "order_items" }
