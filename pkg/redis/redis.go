package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kittenluv1/clubhouse-sub000/config"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单与分类列表缓存；后续可扩展其他缓存场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close 关闭底层连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 分类列表缓存 ──

const categoryListKey = "clubs:categories"

// GetCategoryList 读取分类列表缓存；缓存未命中返回 (nil, false)
func (c *Client) GetCategoryList(ctx context.Context) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, categoryListKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("读取分类缓存失败", zap.Error(err))
		}
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		c.logger.Warn("分类缓存内容损坏，忽略", zap.Error(err))
		return nil, false
	}
	return categories, true
}

// SetCategoryList 写入分类列表缓存
func (c *Client) SetCategoryList(ctx context.Context, categories []string, ttl time.Duration) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoryListKey, raw, ttl).Err(); err != nil {
		c.logger.Warn("写入分类缓存失败", zap.Error(err))
	}
}
