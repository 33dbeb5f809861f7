// Package model はドメインモデルを定義する。
package model

import "time"

// Author は投稿を所有する登録済みユーザーを表す。
// emailは全Author間で一意。作成後に変更されることはなく、削除操作も存在しない。
type Author struct {
	ID        int64
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
