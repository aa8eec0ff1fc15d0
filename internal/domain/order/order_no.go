package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式：ORD + 时间戳(秒) + 6位随机数，如 ORD1699248000123456
// 唯一性最终由数据库唯一索引保证
func GenerateOrderNo() string {
	return generateOrderNo(time.Now())
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("ORD%d%06d", now.Unix(), rand.Intn(1000000))
}
