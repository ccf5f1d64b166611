// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"context"
	"errors"
	"testing"

	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txRecord struct {
	Id   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
}

func TestGormTransactor(t *testing.T) {
	db := testioc.InitDB()
	require.NoError(t, db.AutoMigrate(&txRecord{}))
	tr := NewTransactor(db)

	testCases := []struct {
		name      string
		fn        func(ctx context.Context) error
		wantErr   error
		wantCount int64
	}{
		{
			name: "提交",
			fn: func(ctx context.Context) error {
				assert.True(t, InTransaction(ctx))
				return Conn(ctx, db).Create(&txRecord{Name: "commit"}).Error
			},
			wantCount: 1,
		},
		{
			name: "返回错误回滚",
			fn: func(ctx context.Context) error {
				err := Conn(ctx, db).Create(&txRecord{Name: "rollback"}).Error
				require.NoError(t, err)
				return errors.New("mock error")
			},
			wantErr:   errors.New("mock error"),
			wantCount: 0,
		},
		{
			name: "嵌套调用复用外层事务",
			fn: func(ctx context.Context) error {
				return tr.Transaction(ctx, func(ctx context.Context) error {
					if err := Conn(ctx, db).Create(&txRecord{Name: "inner"}).Error; err != nil {
						return err
					}
					return errors.New("inner error")
				})
			},
			wantErr:   errors.New("inner error"),
			wantCount: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				db.Exec("DELETE FROM `tx_records`")
			})
			err := tr.Transaction(context.Background(), tc.fn)
			assert.Equal(t, tc.wantErr, err)
			var cnt int64
			require.NoError(t, db.Model(&txRecord{}).Count(&cnt).Error)
			assert.Equal(t, tc.wantCount, cnt)
		})
	}
	assert.False(t, InTransaction(context.Background()))
}

func TestAfterCommit(t *testing.T) {
	db := testioc.InitDB()
	tr := NewTransactor(db)

	var called []string
	AfterCommit(context.Background(), func(ctx context.Context) {
		assert.False(t, InTransaction(ctx))
		called = append(called, "no-tx")
	})
	assert.Equal(t, []string{"no-tx"}, called)

	called = nil
	err := tr.Transaction(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(ctx context.Context) {
			called = append(called, "outer")
		})
		err := tr.Transaction(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func(ctx context.Context) {
				assert.False(t, InTransaction(ctx))
				called = append(called, "inner")
			})
			return nil
		})
		// 提交之前不执行
		assert.Empty(t, called)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, called)

	called = nil
	err = tr.Transaction(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(ctx context.Context) {
			called = append(called, "rollback")
		})
		return errors.New("mock error")
	})
	assert.Equal(t, errors.New("mock error"), err)
	assert.Empty(t, called)
}
