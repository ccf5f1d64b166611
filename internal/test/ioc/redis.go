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
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/redis/go-redis/v9"
)

var (
	cache         ecache.Cache
	redisCmd      redis.Cmdable
	cacheInitOnce sync.Once
)

func InitRedis() redis.Cmdable {
	cacheInitOnce.Do(func() {
		mr, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisCmd = redis.NewClient(&redis.Options{
			Addr: mr.Addr(),
		})
		cache = &ecache.NamespaceCache{
			C:         eredis.NewCache(redisCmd),
			Namespace: "emall:",
		}
	})
	return redisCmd
}

func InitCache() ecache.Cache {
	InitRedis()
	return cache
}
