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

package testioc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	"github.com/glebarez/sqlite"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSNEnv 设置之后测试跑在真实的 MySQL 上
const MySQLDSNEnv = "EMALL_TEST_MYSQL_DSN"

var (
	db         *egorm.Component
	dbInitOnce sync.Once
)

// InitDB 测试用的数据库，进程内共享。
// 默认是临时目录下的 SQLite 文件，WAL 模式加写锁等待，允许多个连接并发；
// 设置了 EMALL_TEST_MYSQL_DSN 时连接 MySQL
func InitDB() *egorm.Component {
	dbInitOnce.Do(func() {
		var (
			gdb *gorm.DB
			err error
		)
		cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
		if dsn := os.Getenv(MySQLDSNEnv); dsn != "" {
			gdb, err = openMySQL(dsn, cfg)
		} else {
			gdb, err = openSQLite(cfg)
		}
		if err != nil {
			panic(err)
		}
		db = gdb
	})
	return db
}

func openSQLite(cfg *gorm.Config) (*gorm.DB, error) {
	dir, err := os.MkdirTemp("", "emall-test-")
	if err != nil {
		return nil, err
	}
	// 事务以 BEGIN IMMEDIATE 开始，先读后写的事务不会在升级写锁时直接失败
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		filepath.Join(dir, "emall.db"))
	gdb, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(8)
	return gdb, nil
}

func openMySQL(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, 10*time.Second, 10)
	if err != nil {
		return nil, err
	}
	for {
		gdb, err := gorm.Open(gormMysql.Open(dsn), cfg)
		if err == nil {
			sqlDB, er := gdb.DB()
			if er != nil {
				return nil, er
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = sqlDB.PingContext(ctx)
			cancel()
			if err == nil {
				return gdb, nil
			}
		}
		next, ok := strategy.Next()
		if !ok {
			return nil, fmt.Errorf("等待 MySQL 启动失败: %w", err)
		}
		time.Sleep(next)
	}
}
