package model

import "time"

// Visibility はエントリの公開範囲を表す。
type Visibility string

const (
	// VisibilityPublic は全員が閲覧可能なエントリを示す。
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate は所有者のみ閲覧可能なエントリを示す。
	VisibilityPrivate Visibility = "private"
)

// Valid はVisibilityが定義済みの値かどうかを返す。
// public/private以外の値は永続化してはならない。
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Entry はScribeのChronicleに記録される1件のエントリを表す。
// ScribeUsernameは所有者とのJOINで取得する読み取り専用フィールド。
type Entry struct {
	ID             string
	Content        string
	Visibility     Visibility
	ScribeID       string
	ScribeUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
