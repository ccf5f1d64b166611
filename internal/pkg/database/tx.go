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

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type txKey struct{}

// txState 事务连接以及提交成功之后要执行的动作
type txState struct {
	tx          *gorm.DB
	afterCommit []func(ctx context.Context)
}

// Transactor 把事务放进 context 里传递，
// 这样跨模块的 DAO 都能通过 Conn 加入同一个事务
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type GormTransactor struct {
	db *egorm.Component
}

func NewTransactor(db *egorm.Component) Transactor {
	return &GormTransactor{db: db}
}

// Transaction fn 返回 error 或者 panic 时回滚。
// 已经处于事务中时直接复用外层事务，AfterCommit 注册的动作在最外层提交成功后执行
func (t *GormTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}
	state := &txState{}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state.tx = tx
		return fn(context.WithValue(ctx, txKey{}, state))
	})
	if err != nil {
		return err
	}
	for _, hook := range state.afterCommit {
		hook(ctx)
	}
	return nil
}

// AfterCommit 在事务提交成功之后执行 fn，回滚时丢弃。
// ctx 没有携带事务时立刻执行
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		state.afterCommit = append(state.afterCommit, fn)
		return
	}
	fn(ctx)
}

// Conn 返回 ctx 中的事务连接，没有事务时返回 db 本身
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTransaction 判断 ctx 是否携带了事务
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}
