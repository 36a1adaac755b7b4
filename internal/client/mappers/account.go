// Package mappers translates between the three representations of each
// entity: remote DTO, domain model, and cache row. Mapping is pure and total:
// no I/O, deterministic output, and optional-field corruption absorbed via
// defaults. Only a missing required identity field is a mapping failure.
package mappers

import (
	"fmt"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/timex"
)

// AccountToDomain maps the plain account record. The gamification fields are
// absent on this path and default to zero points, no level, no streak.
func AccountToDomain(dto remote.AccountDTO) (*models.Account, error) {
	if dto.ID == nil || dto.GithubID == nil {
		return nil, fmt.Errorf("account: %w", common.ErrMissingIdentity)
	}
	return &models.Account{
		ID:        *dto.ID,
		GithubID:  *dto.GithubID,
		Username:  dto.Username,
		Email:     dto.Email,
		Bio:       orEmpty(dto.Bio),
		AvatarURL: dto.AvatarURL,
		CreatedAt: timex.Local(timex.OrNow(timex.Parse(dto.CreatedAt, timex.FormatRemote))),
		UpdatedAt: timex.Local(timex.OrNow(timex.Parse(dto.UpdatedAt, timex.FormatRemote))),
		Points:    0,
		Level:     nil,
		Streak:    nil,
		FCMToken:  orEmpty(dto.FCMToken),
	}, nil
}

// AccountFullToDomain maps the authoritative sync payload, including derived
// points, level, and streak.
func AccountFullToDomain(dto remote.AccountFullDTO) (*models.Account, error) {
	account, err := AccountToDomain(dto.Account)
	if err != nil {
		return nil, err
	}

	if dto.Points != nil {
		account.Points = *dto.Points
	}
	if dto.Level != nil {
		level, err := LevelToDomain(*dto.Level)
		if err != nil {
			return nil, err
		}
		account.Level = level
	}
	if dto.Streak != nil {
		streak := StreakToDomain(*dto.Streak)
		account.Streak = &streak
	}
	return account, nil
}

// AccountToCache projects the domain account onto its cache row.
func AccountToCache(a models.Account) models.AccountCache {
	c := models.AccountCache{
		ID:        a.ID,
		GithubID:  a.GithubID,
		Username:  a.Username,
		Email:     a.Email,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
		CreatedAt: timex.Render(a.CreatedAt, timex.FormatCache),
		UpdatedAt: timex.Render(a.UpdatedAt, timex.FormatCache),
		Points:    a.Points,
		FCMToken:  a.FCMToken,
	}
	if a.Level != nil {
		c.Level = &models.LevelCache{
			ID:        a.Level.ID,
			Name:      a.Level.Name,
			Number:    a.Level.Number,
			MinPoints: a.Level.MinPoints,
			MaxPoints: a.Level.MaxPoints,
		}
	}
	if a.Streak != nil {
		c.Streak = &models.StreakCache{
			Current:   a.Streak.Current,
			Longest:   a.Streak.Longest,
			UpdatedAt: timex.Render(a.Streak.UpdatedAt, timex.FormatCache),
		}
	}
	return c
}

// AccountFromCache rebuilds the domain account from its cache row.
func AccountFromCache(c models.AccountCache) models.Account {
	a := models.Account{
		ID:        c.ID,
		GithubID:  c.GithubID,
		Username:  c.Username,
		Email:     c.Email,
		Bio:       c.Bio,
		AvatarURL: c.AvatarURL,
		CreatedAt: timex.Local(timex.OrNow(timex.Parse(c.CreatedAt, timex.FormatCache))),
		UpdatedAt: timex.Local(timex.OrNow(timex.Parse(c.UpdatedAt, timex.FormatCache))),
		Points:    c.Points,
		FCMToken:  c.FCMToken,
	}
	if c.Level != nil {
		a.Level = &models.Level{
			ID:        c.Level.ID,
			Name:      c.Level.Name,
			Number:    c.Level.Number,
			MinPoints: c.Level.MinPoints,
			MaxPoints: c.Level.MaxPoints,
		}
	}
	if c.Streak != nil {
		a.Streak = &models.Streak{
			Current:   c.Streak.Current,
			Longest:   c.Streak.Longest,
			UpdatedAt: timex.OrNow(timex.Parse(c.Streak.UpdatedAt, timex.FormatCache)),
		}
	}
	return a
}

// LevelToDomain maps a gamification tier.
func LevelToDomain(dto remote.LevelDTO) (*models.Level, error) {
	if dto.ID == nil {
		return nil, fmt.Errorf("level: %w", common.ErrMissingIdentity)
	}
	return &models.Level{
		ID:        *dto.ID,
		Name:      dto.Name,
		Number:    dto.Number,
		MinPoints: dto.MinPoints,
		MaxPoints: dto.MaxPoints,
	}, nil
}

// StreakToDomain maps the consecutive-activity counter.
func StreakToDomain(dto remote.StreakDTO) models.Streak {
	return models.Streak{
		Current:   dto.Current,
		Longest:   dto.Longest,
		UpdatedAt: timex.OrNowUTC(timex.Parse(dto.UpdatedAt, timex.FormatRemote)),
	}
}

// AccountLightToDomain maps the reduced listing projection. CreatedAt is
// anchored to UTC.
func AccountLightToDomain(dto remote.AccountLightDTO) (*models.AccountLight, error) {
	if dto.ID == nil {
		return nil, fmt.Errorf("account light: %w", common.ErrMissingIdentity)
	}
	return &models.AccountLight{
		ID:        *dto.ID,
		Username:  dto.Username,
		AvatarURL: dto.AvatarURL,
		CreatedAt: timex.OrNowUTC(timex.Parse(dto.CreatedAt, timex.FormatRemote)),
		FCMToken:  orEmpty(dto.FCMToken),
	}, nil
}

// AccountLightToCache projects the light account onto its cache row. The
// remote wire layout is kept for this row, matching what the listing path
// parses back.
func AccountLightToCache(a models.AccountLight) models.AccountLightCache {
	return models.AccountLightCache{
		ID:        a.ID,
		Username:  a.Username,
		AvatarURL: a.AvatarURL,
		CreatedAt: timex.Render(a.CreatedAt, timex.FormatRemote),
		FCMToken:  a.FCMToken,
	}
}

// AccountLightFromCache rebuilds the light account from its cache row.
func AccountLightFromCache(c models.AccountLightCache) models.AccountLight {
	return models.AccountLight{
		ID:        c.ID,
		Username:  c.Username,
		AvatarURL: c.AvatarURL,
		CreatedAt: timex.OrNowUTC(timex.Parse(c.CreatedAt, timex.FormatRemote)),
		FCMToken:  c.FCMToken,
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
