package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/angelmondragon/skuexport/pkg/auth"
	"github.com/angelmondragon/skuexport/pkg/auth/session"
	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/enums"
	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/redis"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "token"})

	_ = godotenv.Load()

	userFlag := flag.String("user", "", "operator user id (uuid); generated when empty")
	roleFlag := flag.String("role", string(enums.MemberRoleManager), "role: admin|manager|viewer")
	revoke := flag.String("revoke", "", "revoke the session behind this token id instead of minting")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "token",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var manager *session.Manager
	if cfg.JWT.RequireSession && cfg.Redis.Configured() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer redisClient.Close()

		manager, err = session.NewManager(redisClient, cfg.JWT)
		requireResource(ctx, logg, "session manager", err)
	}

	if *revoke != "" {
		if manager == nil {
			fmt.Fprintln(os.Stderr, "revocation requires redis and SKUEXPORT_JWT_REQUIRE_SESSION=true")
			os.Exit(1)
		}
		requireResource(ctx, logg, "session revoke", manager.Revoke(ctx, *revoke))
		fmt.Println("revoked session:", *revoke)
		return
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -user: %v\n", err)
			os.Exit(1)
		}
	}
	role, err := enums.ParseMemberRole(*roleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -role: %v\n", err)
		os.Exit(1)
	}

	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    accessID,
	})
	requireResource(ctx, logg, "token", err)

	if manager != nil {
		_, err := manager.Generate(ctx, accessID)
		requireResource(ctx, logg, "session", err)
	} else if cfg.JWT.RequireSession {
		logg.Warn(ctx, "redis not configured: token minted without a session and will be rejected while sessions are required")
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"user_id":    userID.String(),
		"actor_role": role.String(),
		"token_id":   accessID,
		"expires_in": cfg.JWT.AccessTokenTTL().String(),
	}), "access token minted")
	fmt.Println(token)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
