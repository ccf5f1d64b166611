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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestOrderGORMDAO_CAS(t *testing.T) {
	testCases := []struct {
		name     string
		mock     func(t *testing.T) *sql.DB
		update   func(d OrderDAO) (int64, error)
		wantRows int64
		wantErr  error
	}{
		{
			name: "标记已支付",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `card_last4`=\\?,`gateway_payment_ref`=\\?,`paid_at`=\\?,`payment_bank`=\\?,`payment_method`=\\?,`payment_status`=\\?,`payment_vpa`=\\?,`status`=\\?,`utime`=\\? WHERE id = \\? AND status = \\? AND payment_status IN \\(\\?,\\?\\)").
					WithArgs("1111", "pay_1", sqlmock.AnyArg(), "", "card", int64(2), "", int64(2), sqlmock.AnyArg(),
						int64(1), int64(1), int64(1), int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.MarkPaid(context.Background(), 1, Order{
					GatewayPaymentRef: "pay_1",
					PaymentMethod:     "card",
					CardLast4:         "1111",
				})
			},
			wantRows: 1,
		},
		{
			name: "已经支付过",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET .* WHERE id = \\? AND status = \\? AND payment_status IN \\(\\?,\\?\\)").
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.MarkPaid(context.Background(), 1, Order{GatewayPaymentRef: "pay_1"})
			},
		},
		{
			name: "标记支付失败",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `gateway_payment_ref`=\\?,`payment_status`=\\?,`status`=\\?,`utime`=\\? WHERE id = \\? AND status = \\? AND payment_status <> \\?").
					WithArgs("pay_2", int64(3), int64(1), sqlmock.AnyArg(), int64(1), int64(1), int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.MarkFailed(context.Background(), 1, "pay_2")
			},
			wantRows: 1,
		},
		{
			name: "补写同一笔支付的支付方式",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `card_last4`=\\?,`payment_bank`=\\?,`payment_method`=\\?,`payment_vpa`=\\?,`utime`=\\? WHERE id = \\? AND payment_status = \\? AND gateway_payment_ref = \\? AND payment_method = ''").
					WithArgs("1111", "", "card", "", sqlmock.AnyArg(), int64(1), int64(2), "pay_1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.FillPaymentMethod(context.Background(), 1, Order{
					GatewayPaymentRef: "pay_1",
					PaymentMethod:     "card",
					CardLast4:         "1111",
				})
			},
			wantRows: 1,
		},
		{
			name: "取消后到达的扣款",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `card_last4`=\\?,`gateway_payment_ref`=\\?,`paid_at`=\\?,`payment_bank`=\\?,`payment_method`=\\?,`payment_status`=\\?,`payment_vpa`=\\?,`utime`=\\? WHERE id = \\? AND status = \\? AND payment_status IN \\(\\?,\\?\\)").
					WithArgs("", "pay_9", sqlmock.AnyArg(), "", "upi", int64(2), "asha@okbank", sqlmock.AnyArg(),
						int64(1), int64(5), int64(1), int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.MarkPaidAfterCancel(context.Background(), 1, Order{
					GatewayPaymentRef: "pay_9",
					PaymentMethod:     "upi",
					PaymentVpa:        "asha@okbank",
				})
			},
			wantRows: 1,
		},
		{
			name: "取消订单",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `status`=\\?,`utime`=\\? WHERE id = \\? AND status = \\? AND payment_status <> \\?").
					WithArgs(int64(5), sqlmock.AnyArg(), int64(1), int64(1), int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.Cancel(context.Background(), 1)
			},
			wantRows: 1,
		},
		{
			name: "只在没有网关订单号时写入",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` SET `gateway_order_ref`=\\?,`utime`=\\? WHERE id = \\? AND gateway_order_ref = ''").
					WithArgs("order_1", sqlmock.AnyArg(), int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.SetGatewayOrderRef(context.Background(), 1, "order_1")
			},
		},
		{
			name: "数据库错误",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectExec("^UPDATE `orders` .*").
					WillReturnError(errors.New("mock db error"))
				return mockDB
			},
			update: func(d OrderDAO) (int64, error) {
				return d.Cancel(context.Background(), 1)
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := gorm.Open(gormMysql.New(gormMysql.Config{
				Conn:                      tc.mock(t),
				SkipInitializeWithVersion: true,
			}), &gorm.Config{
				DisableAutomaticPing:   true,
				SkipDefaultTransaction: true,
			})
			require.NoError(t, err)
			rows, err := tc.update(NewOrderGORMDAO(db))
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantRows, rows)
		})
	}
}
