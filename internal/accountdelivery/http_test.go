package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest/helpers"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
	"github.com/golang/mock/gomock"
)

var (
	compareDecimal   = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })
	compareCreatedAt = cmpopts.EquateApproxTime(time.Second)
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("account_type", accounttypepkg.ValidAccountType); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	account := helpers.RandomAccount(decimal.NewFromInt(100))

	validForm := url.Values{
		"name":     {account.Holder},
		"acc_num":  {account.Number},
		"acc_type": {account.Type},
		"balance":  {"100"},
	}

	testCases := []struct {
		name           string
		newRequest     func(t *testing.T) *http.Request
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			newRequest: func(t *testing.T) *http.Request {
				return newFormRequest(t, "/create_customer", validForm)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.Number), gomock.Eq(account.Holder), gomock.Eq(account.Type), gomock.Eq("100")).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "OKJSONNumericBalance",
			newRequest: func(t *testing.T) *http.Request {
				body := `{"name":"` + account.Holder + `","acc_num":"` + account.Number +
					`","acc_type":"` + account.Type + `","balance":100}`
				req, err := http.NewRequest(http.MethodPost, "/create_customer", strings.NewReader(body))
				if err != nil {
					t.Fatalf("Creating request error: %v", err)
				}
				req.Header.Set("Content-Type", binding.MIMEJSON)

				return req
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.Number), gomock.Eq(account.Holder), gomock.Eq(account.Type), gomock.Eq("100")).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoBalance",
			newRequest: func(t *testing.T) *http.Request {
				form := url.Values{
					"name":     {account.Holder},
					"acc_num":  {account.Number},
					"acc_type": {account.Type},
				}
				return newFormRequest(t, "/create_customer", form)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.Number), gomock.Eq(account.Holder), gomock.Eq(account.Type), gomock.Eq("")).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoName",
			newRequest: func(t *testing.T) *http.Request {
				form := url.Values{
					"acc_num":  {account.Number},
					"acc_type": {account.Type},
				}
				return newFormRequest(t, "/create_customer", form)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name field is required",
		},
		{
			name: "UnsupportedAccountType",
			newRequest: func(t *testing.T) *http.Request {
				form := url.Values{
					"name":     {account.Holder},
					"acc_num":  {account.Number},
					"acc_type": {"Gold"},
				}
				return newFormRequest(t, "/create_customer", form)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "AccType is not supported",
		},
		{
			name: "ErrInvalidAmount",
			newRequest: func(t *testing.T) *http.Request {
				return newFormRequest(t, "/create_customer", validForm)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrInvalidAmount)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidAmount.Error(),
		},
		{
			name: "ErrAccountNumberExists",
			newRequest: func(t *testing.T) *http.Request {
				return newFormRequest(t, "/create_customer", validForm)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNumberExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrAccountNumberExists.Error(),
		},
		{
			name: "InternalServerError",
			newRequest: func(t *testing.T) *http.Request {
				return newFormRequest(t, "/create_customer", validForm)
			},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.POST("/create_customer", accountHandler.Create)

			tc.buildStubs(accountService)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, tc.newRequest(t))

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &data{}
			res := web.Response{Data: got}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			if want := "Account created for " + account.Holder + "!"; res.Message != want {
				t.Errorf(`resp.Message=%q, want %q`, res.Message, want)
			}

			if diff := cmp.Diff(account, got.Account, compareDecimal, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	n := 3
	accounts := make([]domain.Account, n)

	for i := 0; i < n; i++ {
		accounts[i] = helpers.RandomAccount(decimal.NewFromInt(int64(i * 10)))
	}

	testCases := []struct {
		name           string
		query          string
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantAccounts   []domain.Account
	}{
		{
			name: "All",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Search(gomock.Any(), gomock.Eq("")).
					Times(1).
					Return(accounts, nil)
			},
			wantStatusCode: http.StatusOK,
			wantAccounts:   accounts,
		},
		{
			name:  "Search",
			query: "?search=" + url.QueryEscape(accounts[1].Holder),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Search(gomock.Any(), gomock.Eq(accounts[1].Holder)).
					Times(1).
					Return(accounts[1:2], nil)
			},
			wantStatusCode: http.StatusOK,
			wantAccounts:   accounts[1:2],
		},
		{
			name:  "NoMatches",
			query: "?search=zzz",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Search(gomock.Any(), gomock.Eq("zzz")).
					Times(1).
					Return(nil, nil)
			},
			wantStatusCode: http.StatusOK,
			wantAccounts:   []domain.Account{},
		},
		{
			name: "InternalServerError",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			accountService := NewMockService(ctrl)
			accountHandler := NewHandler(accountService)

			server := gin.New()
			server.GET("/", accountHandler.List)

			tc.buildStubs(accountService)

			req, err := http.NewRequest(http.MethodGet, "/"+tc.query, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Fatalf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &dataAccounts{}
			res := web.Response{Data: got}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != errorspkg.ErrInternal.Error() {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, errorspkg.ErrInternal.Error())
				}

				return
			}

			if diff := cmp.Diff(tc.wantAccounts, got.Accounts, compareDecimal, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountHandler := NewHandler(NewMockService(ctrl))

	server := gin.New()
	server.GET("/create_customer", accountHandler.CreateForm)

	req, err := http.NewRequest(http.MethodGet, "/create_customer", nil)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Status code: got %v, want %v", recorder.Code, http.StatusOK)
	}

	got := &dataForm{}
	if err := json.NewDecoder(recorder.Body).Decode(&web.Response{Data: got}); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if diff := cmp.Diff(accounttypepkg.SupportedTypes, got.AccountTypes); diff != "" {
		t.Errorf("account types mismatch (-want +got):\n%s", diff)
	}
}

func newFormRequest(t *testing.T, path string, form url.Values) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(form.Encode()))
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	req.Header.Set("Content-Type", binding.MIMEPOSTForm)

	return req
}
