package services_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

type accountMocks struct {
	reader    *services.MockUserReader
	writer    *services.MockUserWriter
	hasher    *services.MockPasswordHasher
	watchlist *services.MockMovieListReader
	favorites *services.MockMovieListReader
	kafka     *services.MockKafkaWriter
}

func newAccountService(t *testing.T) (*services.AccountService, accountMocks) {
	ctrl := gomock.NewController(t)
	m := accountMocks{
		reader:    services.NewMockUserReader(ctrl),
		writer:    services.NewMockUserWriter(ctrl),
		hasher:    services.NewMockPasswordHasher(ctrl),
		watchlist: services.NewMockMovieListReader(ctrl),
		favorites: services.NewMockMovieListReader(ctrl),
		kafka:     services.NewMockKafkaWriter(ctrl),
	}
	svc := services.NewAccountService(m.reader, m.writer, m.hasher, m.watchlist, m.favorites, m.kafka, time.Hour)
	return svc, m
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestAccountService_GetProfile(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{ID: userID, Username: "alice", PasswordHash: "digest", IsActive: true}
	watch := []models.MovieSummary{{ID: uuid.New(), Title: "Heat"}}
	favs := []models.MovieSummary{{ID: uuid.New(), Title: "Alien"}}

	t.Run("populated profile", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		m.watchlist.EXPECT().List(gomock.Any(), userID).Return(watch, nil)
		m.favorites.EXPECT().List(gomock.Any(), userID).Return(favs, nil)

		profile, err := svc.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.Equal(t, watch, profile.Watchlist)
		assert.Equal(t, favs, profile.Favorites)

		body, err := json.Marshal(profile)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "digest")
	})

	t.Run("user not found", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.GetProfile(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("list error", func(t *testing.T) {
		svc, m := newAccountService(t)
		listErr := errors.New("list error")
		m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		m.watchlist.EXPECT().List(gomock.Any(), userID).Return(nil, listErr)

		_, err := svc.GetProfile(context.Background(), userID)
		assert.ErrorIs(t, err, listErr)
	})
}

func TestAccountService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	first := "Alicia"
	premium := models.SubscriptionPremium
	bogus := models.SubscriptionType("gold")

	tests := []struct {
		name     string
		upd      models.ProfileUpdate
		setup    func(m accountMocks)
		wantKind apperrors.Kind
		wantErr  bool
	}{
		{
			name: "updates name and subscription",
			upd:  models.ProfileUpdate{FirstName: &first, SubscriptionType: &premium},
			setup: func(m accountMocks) {
				m.writer.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).
					Return(&models.UserDB{ID: userID, FirstName: first, SubscriptionType: premium}, nil)
			},
		},
		{
			name:     "empty update",
			upd:      models.ProfileUpdate{},
			setup:    func(m accountMocks) {},
			wantKind: apperrors.KindValidation,
			wantErr:  true,
		},
		{
			name:     "invalid subscription",
			upd:      models.ProfileUpdate{SubscriptionType: &bogus},
			setup:    func(m accountMocks) {},
			wantKind: apperrors.KindValidation,
			wantErr:  true,
		},
		{
			name: "missing user",
			upd:  models.ProfileUpdate{FirstName: &first},
			setup: func(m accountMocks) {
				m.writer.EXPECT().UpdateProfile(gomock.Any(), userID, gomock.Any()).Return(nil, apperrors.ErrNotFound)
			},
			wantKind: apperrors.KindNotFound,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAccountService(t)
			tt.setup(m)

			user, err := svc.UpdateProfile(context.Background(), userID, tt.upd)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, first, user.FirstName)
			assert.Equal(t, premium, user.SubscriptionType)
		})
	}
}

func TestAccountService_ChangePassword(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{ID: userID, PasswordHash: "old-digest", IsActive: true}

	tests := []struct {
		name    string
		setup   func(m accountMocks)
		wantErr error
	}{
		{
			name: "password changed",
			setup: func(m accountMocks) {
				m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.hasher.EXPECT().Verify(gomock.Any(), "old-pass", "old-digest").Return(true, nil)
				m.hasher.EXPECT().Hash(gomock.Any(), "new-pass").Return("new-digest", nil)
				m.writer.EXPECT().UpdatePassword(gomock.Any(), userID, "new-digest").Return(nil)
				m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "current password mismatch leaves hash untouched",
			setup: func(m accountMocks) {
				m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.hasher.EXPECT().Verify(gomock.Any(), "old-pass", "old-digest").Return(false, nil)
			},
			wantErr: services.ErrIncorrectPassword,
		},
		{
			name: "user gone",
			setup: func(m accountMocks) {
				m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name: "publish failure does not fail the change",
			setup: func(m accountMocks) {
				m.reader.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
				m.hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("new-digest", nil)
				m.writer.EXPECT().UpdatePassword(gomock.Any(), userID, "new-digest").Return(nil)
				m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAccountService(t)
			tt.setup(m)

			err := svc.ChangePassword(context.Background(), userID, "old-pass", "new-pass")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAccountService_ForgotPassword(t *testing.T) {
	userID := uuid.New()

	t.Run("stores hashed token and publishes raw token", func(t *testing.T) {
		svc, m := newAccountService(t)
		var storedHash string
		var expires time.Time

		m.reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").
			Return(&models.UserDB{ID: userID, Email: "alice@example.com", IsActive: true}, nil)
		m.writer.EXPECT().SetResetToken(gomock.Any(), userID, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, hash string, exp time.Time) error {
				storedHash = hash
				expires = exp
				return nil
			})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, msgs ...kafka.Message) error {
				var evt models.UserEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &evt))
				assert.Equal(t, models.EventPasswordResetRequested, evt.Type)

				token, ok := evt.Payload["resetToken"].(string)
				require.True(t, ok)
				assert.NotEmpty(t, token)
				assert.Equal(t, sha256Hex(token), storedHash)
				assert.NotEqual(t, token, storedHash)
				return nil
			})

		err := svc.ForgotPassword(context.Background(), " Alice@Example.com ")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)
	})

	t.Run("unknown email is silent", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.reader.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

		assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	})

	t.Run("inactive account is silent", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.reader.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).
			Return(&models.UserDB{ID: userID, IsActive: false}, nil)

		assert.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	})
}

func TestAccountService_ResetPassword(t *testing.T) {
	userID := uuid.New()
	errDB := errors.New("db error")

	tests := []struct {
		name    string
		token   string
		setup   func(m accountMocks)
		wantErr error
	}{
		{
			name:  "valid token",
			token: "raw-token",
			setup: func(m accountMocks) {
				m.reader.EXPECT().HasResetToken(gomock.Any(), "alice@example.com", sha256Hex("raw-token")).Return(true, nil)
				m.hasher.EXPECT().Hash(gomock.Any(), "new-pass").Return("new-digest", nil)
				m.writer.EXPECT().ResetPassword(gomock.Any(), "alice@example.com", sha256Hex("raw-token"), "new-digest").
					Return(userID, true, nil)
				m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "expired or unknown token skips hashing",
			token: "raw-token",
			setup: func(m accountMocks) {
				m.reader.EXPECT().HasResetToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: services.ErrInvalidResetToken,
		},
		{
			name:  "token consumed between check and update",
			token: "raw-token",
			setup: func(m accountMocks) {
				m.reader.EXPECT().HasResetToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				m.hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("new-digest", nil)
				m.writer.EXPECT().ResetPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(uuid.Nil, false, nil)
			},
			wantErr: services.ErrInvalidResetToken,
		},
		{
			name:  "token lookup error",
			token: "raw-token",
			setup: func(m accountMocks) {
				m.reader.EXPECT().HasResetToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errDB)
			},
			wantErr: errDB,
		},
		{
			name:    "empty token",
			token:   "",
			setup:   func(m accountMocks) {},
			wantErr: services.ErrInvalidResetToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAccountService(t)
			tt.setup(m)

			err := svc.ResetPassword(context.Background(), "Alice@example.com", tt.token, "new-pass")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
