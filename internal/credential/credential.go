// Package credential はパスワードのハッシュ化と検証を提供する。
// アルゴリズムはPBKDF2-SHA256で、ハッシュ文字列は
// "pbkdf2:sha256:<iterations>$<salt>$<hex>" 形式で保存する。
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations はPBKDF2の既定の反復回数。
	DefaultIterations = 260000
	// MinIterations は許容する最小の反復回数。
	// これ未満の設定値は既定値に引き上げる。
	MinIterations = 100000

	saltBytes = 16
	keyBytes  = 32

	algorithmPrefix = "pbkdf2:sha256"
)

// Hasher はPBKDF2によるパスワードハッシュの生成と検証を行う。
type Hasher struct {
	iterations int
}

// NewHasher は指定された反復回数のHasherを生成する。
// iterationsがMinIterations未満の場合はDefaultIterationsを使用する。
func NewHasher(iterations int) *Hasher {
	if iterations < MinIterations {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// Hash はパスワードをハッシュ化した保存用文字列を返す。
// 呼び出しごとに新しいランダムソルトを生成するため、
// 同一パスワードでも毎回異なるハッシュ文字列になる。
func (h *Hasher) Hash(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, keyBytes, sha256.New)

	return fmt.Sprintf("%s:%d$%s$%s", algorithmPrefix, h.iterations, salt, hex.EncodeToString(key)), nil
}

// Verify は保存済みハッシュ文字列とパスワードを照合する。
// 反復回数は保存済み文字列から読み取るため、設定変更後も既存ハッシュを検証できる。
// 形式が不正な場合はfalseを返す。
func (h *Hasher) Verify(stored, password string) bool {
	iterations, salt, want, ok := parseHash(stored)
	if !ok {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1
}

// parseHash は保存用ハッシュ文字列を反復回数、ソルト、導出鍵に分解する。
func parseHash(stored string) (iterations int, salt string, key []byte, ok bool) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, false
	}

	// ヘッダは "pbkdf2:sha256:<iterations>"
	idx := strings.LastIndex(parts[0], ":")
	if idx < 0 || parts[0][:idx] != algorithmPrefix {
		return 0, "", nil, false
	}
	iterations, err := strconv.Atoi(parts[0][idx+1:])
	if err != nil || iterations <= 0 {
		return 0, "", nil, false
	}

	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, "", nil, false
	}

	return iterations, parts[1], key, true
}
