// Package model はドメインモデルを定義する。
package model

import "time"

// Scribe はLogbookのアカウントを表す。
// PasswordHashはソルト込みの一方向ハッシュ文字列で、APIレスポンスには一切含めない。
type Scribe struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Bio          *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
