package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	AuthServiceName  = "tabsplit.v1.AuthService"
	OrderServiceName = "tabsplit.v1.OrderService"
	SplitServiceName = "tabsplit.v1.SplitService"
)

const (
	AuthServiceRegisterProcedure       = "/tabsplit.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/tabsplit.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/tabsplit.v1.AuthService/GetCurrentUser"

	OrderServiceCreateOrderProcedure = "/tabsplit.v1.OrderService/CreateOrder"
	OrderServiceGetOrderProcedure    = "/tabsplit.v1.OrderService/GetOrder"

	SplitServicePreviewSplitProcedure = "/tabsplit.v1.SplitService/PreviewSplit"
	SplitServiceConfirmSplitProcedure = "/tabsplit.v1.SplitService/ConfirmSplit"
	SplitServiceListPaymentsProcedure = "/tabsplit.v1.SplitService/ListPayments"
)

// PublicProcedures can be called without a bearer token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}

// AuthServiceHandler is implemented by the staff authentication service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// OrderServiceHandler is implemented by the order service.
type OrderServiceHandler interface {
	CreateOrder(context.Context, *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error)
	GetOrder(context.Context, *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error)
}

// SplitServiceHandler is implemented by the split service.
type SplitServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	ConfirmSplit(context.Context, *connect.Request[ConfirmSplitRequest]) (*connect.Response[ConfirmSplitResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for the auth service and
// returns the path to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
	})
}

// NewOrderServiceHandler builds an HTTP handler for the order service.
func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + OrderServiceName + "/", route(map[string]http.Handler{
		OrderServiceCreateOrderProcedure: connect.NewUnaryHandler(OrderServiceCreateOrderProcedure, svc.CreateOrder, opts...),
		OrderServiceGetOrderProcedure:    connect.NewUnaryHandler(OrderServiceGetOrderProcedure, svc.GetOrder, opts...),
	})
}

// NewSplitServiceHandler builds an HTTP handler for the split service.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SplitServiceName + "/", route(map[string]http.Handler{
		SplitServicePreviewSplitProcedure: connect.NewUnaryHandler(SplitServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		SplitServiceConfirmSplitProcedure: connect.NewUnaryHandler(SplitServiceConfirmSplitProcedure, svc.ConfirmSplit, opts...),
		SplitServiceListPaymentsProcedure: connect.NewUnaryHandler(SplitServiceListPaymentsProcedure, svc.ListPayments, opts...),
	})
}

func route(procedures map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := procedures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// AuthServiceClient calls the auth service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// NewAuthServiceClient returns a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// OrderServiceClient calls the order service.
type OrderServiceClient interface {
	CreateOrder(context.Context, *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error)
	GetOrder(context.Context, *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error)
}

// NewOrderServiceClient returns a client for the order service at baseURL.
func NewOrderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) OrderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &orderServiceClient{
		createOrder: connect.NewClient[CreateOrderRequest, CreateOrderResponse](httpClient, baseURL+OrderServiceCreateOrderProcedure, opts...),
		getOrder:    connect.NewClient[GetOrderRequest, GetOrderResponse](httpClient, baseURL+OrderServiceGetOrderProcedure, opts...),
	}
}

type orderServiceClient struct {
	createOrder *connect.Client[CreateOrderRequest, CreateOrderResponse]
	getOrder    *connect.Client[GetOrderRequest, GetOrderResponse]
}

func (c *orderServiceClient) CreateOrder(ctx context.Context, req *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error) {
	return c.createOrder.CallUnary(ctx, req)
}

func (c *orderServiceClient) GetOrder(ctx context.Context, req *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error) {
	return c.getOrder.CallUnary(ctx, req)
}

// SplitServiceClient calls the split service.
type SplitServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	ConfirmSplit(context.Context, *connect.Request[ConfirmSplitRequest]) (*connect.Response[ConfirmSplitResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
}

// NewSplitServiceClient returns a client for the split service at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &splitServiceClient{
		previewSplit: connect.NewClient[PreviewSplitRequest, PreviewSplitResponse](httpClient, baseURL+SplitServicePreviewSplitProcedure, opts...),
		confirmSplit: connect.NewClient[ConfirmSplitRequest, ConfirmSplitResponse](httpClient, baseURL+SplitServiceConfirmSplitProcedure, opts...),
		listPayments: connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+SplitServiceListPaymentsProcedure, opts...),
	}
}

type splitServiceClient struct {
	previewSplit *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
	confirmSplit *connect.Client[ConfirmSplitRequest, ConfirmSplitResponse]
	listPayments *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
}

func (c *splitServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) ConfirmSplit(ctx context.Context, req *connect.Request[ConfirmSplitRequest]) (*connect.Response[ConfirmSplitResponse], error) {
	return c.confirmSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}
