package model

import "time"

// Amenity 设施目录表 对应 amenities
type Amenity struct {
	ID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string  `gorm:"type:varchar(100);not null;uniqueIndex"        json:"name"`
	Category *string `gorm:"type:varchar(50)"                              json:"category,omitempty"`
	Icon     string  `gorm:"type:varchar(100);not null"                    json:"icon"`
	BaseModel
}

// TableName 指定表名
func (Amenity) TableName() string { return "amenities" }

// AmenityMap 房源与设施的关联 对应 amenity_map
// amenity_id 没有外键，可能指向已删除的设施
type AmenityMap struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ListingID string    `gorm:"type:uuid;not null"                             json:"listing_id"`
	AmenityID string    `gorm:"type:uuid;not null"                             json:"amenity_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
}

// TableName 指定表名
func (AmenityMap) TableName() string { return "amenity_map" }
