package auth

import (
	"context"
	"fmt"

	"github.com/hitoshi/logbook/internal/model"
)

// ScribeFinder は認証に必要なScribe検索のインターフェース。
// repository.ScribeRepositoryの部分集合として定義する。
type ScribeFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.Scribe, error)
}

// PasswordVerifier はパスワード照合のインターフェース。
// credential.Hasherの部分集合として定義する。
type PasswordVerifier interface {
	Verify(stored, password string) bool
	Hash(password string) (string, error)
}

// FailureRecorder は認証失敗のメトリクス記録インターフェース。
type FailureRecorder interface {
	RecordAuthFailure()
}

// Verifier は提示された認証情報を検証し、型付きのCallerを生成する。
type Verifier struct {
	scribes  ScribeFinder
	verifier PasswordVerifier
	recorder FailureRecorder

	// dummyHash はユーザー名が存在しない場合にも照合処理を実行するためのハッシュ。
	// 実在/非実在ユーザー名の応答時間差によるユーザー名列挙を防ぐ。
	dummyHash string
}

// NewVerifier はVerifierを生成する。recorderはnilでもよい。
func NewVerifier(scribes ScribeFinder, verifier PasswordVerifier, recorder FailureRecorder) (*Verifier, error) {
	dummy, err := verifier.Hash("logbook-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("failed to precompute dummy hash: %w", err)
	}

	return &Verifier{
		scribes:   scribes,
		verifier:  verifier,
		recorder:  recorder,
		dummyHash: dummy,
	}, nil
}

// Resolve はユーザー名とパスワードを検証してCallerを返す。
// ユーザー名不明とパスワード不一致はどちらもRejectedで、外形上区別できない。
// ストア障害のみerrorとして返す。
func (v *Verifier) Resolve(ctx context.Context, username, password string) (Caller, error) {
	scribe, err := v.scribes.FindByUsername(ctx, username)
	if err != nil {
		return Caller{}, fmt.Errorf("failed to look up scribe: %w", err)
	}

	if scribe == nil {
		// 実在しないユーザー名でも照合コストを支払う
		v.verifier.Verify(v.dummyHash, password)
		v.recordFailure()
		return Caller{State: Rejected}, nil
	}

	if !v.verifier.Verify(scribe.PasswordHash, password) {
		v.recordFailure()
		return Caller{State: Rejected}, nil
	}

	return Caller{State: Authenticated, Scribe: scribe}, nil
}

func (v *Verifier) recordFailure() {
	if v.recorder != nil {
		v.recorder.RecordAuthFailure()
	}
}
