package dto

// PublisherRequest 创建/全量更新出版社
type PublisherRequest struct {
	Name            string `json:"name" binding:"required,notblank,max=100" example:"Penguin"`
	Location        string `json:"location" binding:"required,notblank,max=200" example:"London"`
	EstablishedYear int    `json:"established_year" binding:"required,min=1" example:"1935"`
	Website         string `json:"website" binding:"omitempty,url,max=200" example:"https://www.penguin.co.uk"`
	ContactEmail    string `json:"contact_email" binding:"omitempty,email,max=254" example:"press@penguin.co.uk"`
}

// PublisherPatchRequest 部分更新出版社
type PublisherPatchRequest struct {
	Name            *string `json:"name" binding:"omitempty,notblank,max=100"`
	Location        *string `json:"location" binding:"omitempty,notblank,max=200"`
	EstablishedYear *int    `json:"established_year" binding:"omitempty,min=1"`
	Website         *string `json:"website" binding:"omitempty,url,max=200"`
	ContactEmail    *string `json:"contact_email" binding:"omitempty,email,max=254"`
}

// AuthorRequest 创建/全量更新作者
type AuthorRequest struct {
	FirstName   string `json:"first_name" binding:"required,notblank,max=50" example:"George"`
	LastName    string `json:"last_name" binding:"required,notblank,max=50" example:"Orwell"`
	Nationality string `json:"nationality" binding:"omitempty,max=50" example:"British"`
}

// AuthorPatchRequest 部分更新作者
type AuthorPatchRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,notblank,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,notblank,max=50"`
	Nationality *string `json:"nationality" binding:"omitempty,max=50"`
}

// GenreRequest 创建/全量更新分类
type GenreRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=50" example:"Classic"`
	Description string `json:"description" binding:"max=1000" example:"经典文学"`
}

// GenrePatchRequest 部分更新分类
type GenrePatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
