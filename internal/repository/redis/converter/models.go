package converter

// TallyRedisModel — строка рейтинга вишлистов в JSON-кэше.
type TallyRedisModel struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}
