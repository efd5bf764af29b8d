package config

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", wantCost: 12},
		{name: "minimum cost", cost: "10", wantCost: 10},
		{name: "maximum cost", cost: "14", wantCost: 14},
		{name: "with pepper", cost: "10", pepper: "pep", wantCost: 10},
		{name: "cost too low", cost: "9", wantErr: true},
		{name: "cost too high", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	tests := []struct {
		name   string
		pepper string
	}{
		{name: "no pepper"},
		{name: "with pepper", pepper: "erop9LTNyViL9dRhkFvfVpvT4zasc/DGTkKIikjV3YE="},
		{name: "long pepper", pepper: strings.Repeat("p", 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: tt.pepper}

			hash, err := cfg.HashPassword("correct horse")
			require.NoError(t, err)
			assert.NotEqual(t, "correct horse", hash)
			assert.True(t, cfg.VerifyPassword("correct horse", hash))
			assert.False(t, cfg.VerifyPassword("wrong horse", hash))
			assert.False(t, cfg.VerifyPassword("", hash))

			again, err := cfg.HashPassword("correct horse")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "salts differ per hash")
		})
	}
}

func TestPasswordConfig_PepperMismatch(t *testing.T) {
	old := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "old-pepper"}
	rotated := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "new-pepper"}
	none := &PasswordConfig{BcryptCost: bcrypt.MinCost}

	hash, err := old.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, old.VerifyPassword("s3cret-pass", hash))
	assert.False(t, rotated.VerifyPassword("s3cret-pass", hash))
	assert.False(t, none.VerifyPassword("s3cret-pass", hash))
}

func TestPasswordConfig_LongPasswords(t *testing.T) {
	long := strings.Repeat("a", 100)

	_, err := (&PasswordConfig{BcryptCost: bcrypt.MinCost}).HashPassword(long)
	assert.Error(t, err, "bcrypt rejects inputs over 72 bytes")

	peppered := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "pep"}
	hash, err := peppered.HashPassword(long)
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword(long, hash))
	assert.False(t, peppered.VerifyPassword(long[:99], hash))
}

func TestPasswordConfig_ConcurrentUse(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: bcrypt.MinCost, Pepper: "pep"}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := cfg.HashPassword("concurrent-pass")
			if err != nil {
				errs <- err
				return
			}
			if !cfg.VerifyPassword("concurrent-pass", hash) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func BenchmarkHashPassword(b *testing.B) {
	cfg := &PasswordConfig{BcryptCost: 10}
	for i := 0; i < b.N; i++ {
		_, _ = cfg.HashPassword("benchmark-pass")
	}
}
