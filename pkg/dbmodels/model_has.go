package dbmodels

// Polymorphic attachment tables. Rows are tied to an owner via the
// (model_id, model_type) pair, e.g. ("12", "primary_analytic").

const ModelTypePrimaryAnalytic = "primary_analytic"

type ModelHasValue struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ModelID   uint64 `gorm:"column:model_id;not null;index:idx_model_has_values_model" json:"model_id"`
	ModelType string `gorm:"column:model_type;type:varchar(125);not null;index:idx_model_has_values_model" json:"model_type"`
	Key       string `gorm:"column:key;type:varchar(125);not null" json:"key"`
	Value     string `gorm:"column:value;type:text" json:"value"`
	ValueType string `gorm:"column:value_type;type:varchar(20);default:'string'" json:"value_type"`
}

func (m *ModelHasValue) TableName() string {
	return "model_has_values"
}

type ModelHasPolygon struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ModelID   uint64 `gorm:"column:model_id;not null;index:idx_model_has_polygons_model" json:"model_id"`
	ModelType string `gorm:"column:model_type;type:varchar(125);not null;index:idx_model_has_polygons_model" json:"model_type"`
	Name      string `gorm:"column:name;type:varchar(125)" json:"name"`
	// Points holds the polygon vertices as a JSON array of [x, y] pairs.
	Points string `gorm:"column:points;type:text;not null" json:"points"`
}

func (m *ModelHasPolygon) TableName() string {
	return "model_has_polygons"
}

type ModelHasEmbed struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ModelID   uint64 `gorm:"column:model_id;not null;index:idx_model_has_embeds_model" json:"model_id"`
	ModelType string `gorm:"column:model_type;type:varchar(125);not null;index:idx_model_has_embeds_model" json:"model_type"`
	Label     string `gorm:"column:label;type:varchar(125)" json:"label"`
	EmbedUrl  string `gorm:"column:embed_url;type:varchar(500);not null" json:"embed_url"`
}

func (m *ModelHasEmbed) TableName() string {
	return "model_has_embeds"
}
