package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

const (
	timeFormat  = "2006-01-02 15:04:05"
	linkKeyTpl  = "link:%s" // link:${tgUsername}
	linkPattern = "link:*"
	tokenPrefix = "sk-plggbll-"
)

type TokenManager struct {
	redis       *redis.Client
	keyTemplate string
}

func NewTokenManager(client *redis.Client, keyTemplate string) *TokenManager {
	return &TokenManager{redis: client, keyTemplate: keyTemplate}
}

func NewTokenManagerFromConfig(config *Config) (*TokenManager, error) {
	client, err := connectRedis(config.Auth.RedisURL)
	if err != nil {
		return nil, err
	}
	return NewTokenManager(client, config.Auth.TokenKeyTemplate), nil
}

func generateToken() (string, error) {
	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return tokenPrefix + hex.EncodeToString(randomBytes), nil
}

func (tm *TokenManager) authKey(student string) string {
	return strings.NewReplacer("{student}", student).Replace(tm.keyTemplate)
}

func (tm *TokenManager) FetchOrCreateStudentToken(ctx context.Context, student string) (*models.TokenInfo, bool, error) {
	key := tm.authKey(student)

	_, err := tm.redis.HGet(ctx, key, "token").Result()
	if err != nil && err != redis.Nil {
		return nil, false, fmt.Errorf("failed to check token: %w", err)
	}

	now := time.Now().UTC()
	isNewToken := false

	pipe := tm.redis.Pipeline()
	if err == redis.Nil {
		token, err := generateToken()
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate token: %w", err)
		}
		pipe.HSet(ctx, key, map[string]interface{}{
			"token":                 token,
			"request_count":         1,
			"last_request_dttm_utc": now.Format(timeFormat),
			"created_dttm_utc":      now.Format(timeFormat),
		})
		isNewToken = true
	} else {
		pipe.HIncrBy(ctx, key, "request_count", 1)
		pipe.HSet(ctx, key, "last_request_dttm_utc", now.Format(timeFormat))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to store token: %w", err)
	}

	values, err := tm.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get token info: %w", err)
	}

	lastReqTime, _ := time.Parse(timeFormat, values["last_request_dttm_utc"])
	createdTime, _ := time.Parse(timeFormat, values["created_dttm_utc"])
	reqCount, _ := strconv.Atoi(values["request_count"])

	return &models.TokenInfo{
		Student:         student,
		Token:           values["token"],
		RequestCount:    reqCount,
		LastRequestTime: lastReqTime,
		CreatedTime:     createdTime,
	}, isNewToken, nil
}

func (tm *TokenManager) LinkTelegram(ctx context.Context, link models.ChatLink) error {
	key := fmt.Sprintf(linkKeyTpl, link.Username)
	return tm.redis.HSet(ctx, key, map[string]interface{}{
		"student":         link.Student,
		"chat_id":         link.ChatID,
		"linked_dttm_utc": link.LinkedTime.UTC().Format(timeFormat),
	}).Err()
}

func parseLink(username string, values map[string]string) *models.ChatLink {
	linked, _ := time.Parse(timeFormat, values["linked_dttm_utc"])
	chatID, _ := strconv.ParseInt(values["chat_id"], 10, 64)
	return &models.ChatLink{
		Student:    values["student"],
		Username:   username,
		ChatID:     chatID,
		LinkedTime: linked,
	}
}

func (tm *TokenManager) FetchLink(ctx context.Context, tgUsername string) (*models.ChatLink, error) {
	values, err := tm.redis.HGetAll(ctx, fmt.Sprintf(linkKeyTpl, tgUsername)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch link for %s: %w", tgUsername, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no student linked to telegram user %s", tgUsername)
	}
	return parseLink(tgUsername, values), nil
}

func (tm *TokenManager) FetchAllLinks(ctx context.Context) ([]*models.ChatLink, error) {
	iter := tm.redis.Scan(ctx, 0, linkPattern, 0).Iterator()

	var links []*models.ChatLink
	for iter.Next(ctx) {
		key := iter.Val()
		values, err := tm.redis.HGetAll(ctx, key).Result()
		if err != nil {
			continue
		}
		links = append(links, parseLink(strings.TrimPrefix(key, "link:"), values))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}
	return links, nil
}

func (tm *TokenManager) Close() error {
	if tm.redis != nil {
		return tm.redis.Close()
	}
	return nil
}
