package model

// Club 社团表 — 对应 clubs
// organization_id 由外部名录系统分配，批量导入按该键 upsert。
// 五个 Average* 聚合字段与 TotalNumReviews 均为派生值，
// 只由发布事务内的重算写入；无已发布评价时平均值为 NULL（区别于 0，前端渲染 N/A）。
type Club struct {
	OrganizationID   string `gorm:"column:organization_id;type:varchar(64);primaryKey"    json:"organization_id"`
	OrganizationName string `gorm:"column:organization_name;type:varchar(255);not null;uniqueIndex" json:"organization_name"`
	Category1Name    string `gorm:"column:category_1_name;type:varchar(100);not null;default:''"    json:"category_1_name"`
	Category2Name    string `gorm:"column:category_2_name;type:varchar(100);not null;default:''"    json:"category_2_name"`
	Description      string `gorm:"type:text;not null;default:''"                         json:"description"`
	ContactEmail     string `gorm:"type:varchar(255);not null;default:''"                 json:"contact_email"`
	WebsiteURL       string `gorm:"column:website_url;type:varchar(512);not null;default:''" json:"website_url"`
	SocialURL        string `gorm:"column:social_url;type:varchar(512);not null;default:''"  json:"social_url"`

	AverageSatisfaction    *float64 `gorm:"type:numeric(3,2)" json:"average_satisfaction"`
	AverageTimeCommitment  *float64 `gorm:"type:numeric(3,2)" json:"average_time_commitment"`
	AverageDiversity       *float64 `gorm:"type:numeric(3,2)" json:"average_diversity"`
	AverageSocialCommunity *float64 `gorm:"type:numeric(3,2)" json:"average_social_community"`
	AverageCompetitiveness *float64 `gorm:"type:numeric(3,2)" json:"average_competitiveness"`
	TotalNumReviews        int      `gorm:"not null;default:0" json:"total_num_reviews"`

	Timestamps
}

// TableName 指定表名
func (Club) TableName() string { return "clubs" }
