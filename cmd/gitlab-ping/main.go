package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvcrn/gitlab-api-client/gitlab"
	"github.com/dvcrn/gitlab-api-client/internal/env"
	"github.com/dvcrn/gitlab-api-client/internal/logger"
)

func main() {
	hostURL, ok := env.Get("GITLAB_URL")
	if !ok {
		logger.Get().Fatal().Msg("GITLAB_URL is required")
	}

	token, ok := env.Get("GITLAB_TOKEN")
	if !ok {
		logger.Get().Fatal().Msg("GITLAB_TOKEN is required")
	}

	tokenType := gitlab.TokenTypePrivate
	if env.GetOrDefault("GITLAB_TOKEN_TYPE", "private") == "access" {
		tokenType = gitlab.TokenTypeAccess
	}

	client, err := gitlab.New(gitlab.Config{
		HostURL:     hostURL,
		APIVersion:  gitlab.APIVersion(env.GetOrDefault("GITLAB_API_VERSION", string(gitlab.V4))),
		TokenType:   tokenType,
		AuthToken:   token,
		SecretToken: env.GetOrDefault("GITLAB_SECRET_TOKEN", ""),
	})
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create GitLab client")
	}

	if env.GetBool("GITLAB_INSECURE") {
		logger.Get().Warn().Msg("TLS certificate validation disabled; use only against trusted test endpoints")
		if err := client.SetIgnoreCertificateErrors(true); err != nil {
			logger.Get().Fatal().Err(err).Msg("Failed to disable TLS certificate validation")
		}
	}

	if sudo, ok := env.Get("GITLAB_SUDO_ID"); ok {
		id, err := strconv.Atoi(sudo)
		if err != nil {
			logger.Get().Fatal().Err(err).Str("value", sudo).Msg("Invalid GITLAB_SUDO_ID")
		}
		client.SetSudoID(id)
	}

	log := logger.Get().With().Str("request_id", uuid.New().String()).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info().Str("base_url", client.BaseURL()).Msg("Checking GitLab API reachability...")

	resp, err := client.Get(ctx, nil, "version")
	if err != nil {
		log.Fatal().Err(err).Msg("GitLab API request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(body))).Msg("GitLab API returned an error status")
		os.Exit(1)
	}

	log.Info().Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(body))).Msg("GitLab API reachable")
}
