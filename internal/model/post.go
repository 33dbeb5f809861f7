// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// published=false のものをドラフトと呼ぶ。公開は false→true の一方向のみで、
// 非公開に戻す操作は存在しない。
type Post struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Content   string // サニタイズ済み
	Published bool
	ViewCount int64
	AuthorID  *int64 // 著者が解決できなかった場合はnil

	// Author はAuthorIDから解決された著者。リポジトリでは読み込まず、
	// サービス層/ファサードが必要に応じて解決する。
	Author *Author
}
