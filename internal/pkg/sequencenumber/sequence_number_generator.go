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

package sequencenumber

import (
	"context"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

const maxCreateRetries = 3

// Generator 基于数据库计数行生成单调递增、可读的编号，例如 ORD-1001。
// 计数行上的 UPDATE 会持有行锁直到事务提交，多实例并发也不会拿到重复的值
type Generator struct {
	db     *egorm.Component
	name   string
	prefix string
	// start 计数器的初始值，第一个编号是 start + 1
	start int64
}

func NewGeneratorWith(db *egorm.Component, name, prefix string, start int64) *Generator {
	return &Generator{db: db, name: name, prefix: prefix, start: start}
}

// NewOrderGenerator 订单编号生成器，从 ORD-1001 开始
func NewOrderGenerator(db *egorm.Component) *Generator {
	return NewGeneratorWith(db, "order", "ORD-", 1000)
}

// Generate 返回带前缀的编号
func (g *Generator) Generate(ctx context.Context) (string, error) {
	seq, err := g.Next(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", g.prefix, seq), nil
}

// Next 返回下一个序号
func (g *Generator) Next(ctx context.Context) (int64, error) {
	var (
		seq int64
		err error
	)
	// 首次使用时多个实例可能同时插入计数行，唯一索引冲突后重试即可
	for i := 0; i < maxCreateRetries; i++ {
		seq, err = g.next(ctx)
		if err == nil {
			return seq, nil
		}
	}
	return 0, fmt.Errorf("生成序列号失败 name=%s: %w", g.name, err)
}

func (g *Generator) next(ctx context.Context) (int64, error) {
	var seq int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		res := tx.Model(&Sequence{}).Where("name = ?", g.name).
			Updates(map[string]any{
				"seq":   gorm.Expr("seq + 1"),
				"utime": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			s := Sequence{Name: g.name, Seq: g.start + 1, Ctime: now, Utime: now}
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			seq = s.Seq
			return nil
		}
		return tx.Model(&Sequence{}).Where("name = ?", g.name).
			Select("seq").Scan(&seq).Error
	})
	return seq, err
}

type Sequence struct {
	Id    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_sequence_name;comment:序列名称"`
	Seq   int64  `gorm:"not null;comment:当前已分配的最大序号"`
	Ctime int64
	Utime int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Sequence{})
}
