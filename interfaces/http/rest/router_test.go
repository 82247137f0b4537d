package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fluxo-backend/application/queries"
	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/flow"
	"fluxo-backend/infrastructure/config"
	"fluxo-backend/infrastructure/di"
	redismsg "fluxo-backend/infrastructure/messaging/redis"
	"fluxo-backend/infrastructure/persistence/memory"
	"fluxo-backend/interfaces/http/rest"
	"fluxo-backend/interfaces/http/rest/handlers"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/observability"
)

const testSecret = "router-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{
		Environment: "test",
		JWTIssuer:   "fluxo-backend",
		CacheTTL:    30,
	}
	domainCfg := *domaincfg.DefaultDomainConfig()
	ids := flow.NewUUIDSource()
	repo := memory.NewFlowRepository(ids, domainCfg)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	commandBus, err := di.ProvideCommandBus(repo, redismsg.NoopPublisher{}, metrics, logger, ids, domainCfg)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(repo, di.NewInMemoryCache(), cfg, domainCfg, metrics, logger)
	require.NoError(t, err)
	sessions := di.ProvideSessionManager(commandBus, metrics, logger)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: testSecret, Issuer: cfg.JWTIssuer})
	require.NoError(t, err)

	router := rest.NewRouter(
		handlers.NewFlowHandler(commandBus, queryBus, logger),
		handlers.NewNodeHandler(commandBus, queryBus, sessions, logger),
		handlers.NewEdgeHandler(commandBus, logger),
		handlers.NewCanvasHandler(sessions, logger),
		validator,
		cfg,
		logger,
	)

	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	gen, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey: testSecret,
		Issuer:    "fluxo-backend",
	})
	require.NoError(t, err)
	token, err := gen.GenerateToken(userID, userID+"@example.com", nil)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doJSON issues a request and decodes the response envelope's data
// into out when out is non-nil
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode
	}

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && env.Data != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func createFlow(t *testing.T, srv *httptest.Server, token, name string) queries.FlowView {
	t.Helper()
	var created queries.FlowView
	status := doJSON(t, srv, http.MethodPost, "/api/v1/flows", token, map[string]string{"name": name}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)
	return created
}

func addNode(t *testing.T, srv *httptest.Server, token, flowID, nodeType string) queries.NodeView {
	t.Helper()
	var node queries.NodeView
	status := doJSON(t, srv, http.MethodPost, "/api/v1/flows/"+flowID+"/nodes", token,
		map[string]interface{}{"type": nodeType, "x": 100, "y": 200}, &node)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, node.ID)
	return node
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/flows")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the middleware answers in the same envelope as the handlers
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	assert.Equal(t, "Missing authentication token", env.Error.Message)
}

func TestHealthEndpointsNeedNoAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFlowEditingRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "Atendimento")
	assert.Equal(t, "Atendimento", created.Name)

	trigger := addNode(t, srv, token, created.ID, "trigger")
	assert.Equal(t, "trigger", trigger.Type)
	assert.Equal(t, "Nova configuração", trigger.Data["description"])

	message := addNode(t, srv, token, created.ID, "message")
	assert.NotEqual(t, trigger.ID, message.ID)

	var edge queries.EdgeView
	status := doJSON(t, srv, http.MethodPost, "/api/v1/flows/"+created.ID+"/edges", token,
		map[string]string{"source": trigger.ID, "target": message.ID}, &edge)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, trigger.ID, edge.Source)
	assert.Equal(t, message.ID, edge.Target)

	var updated queries.NodeView
	status = doJSON(t, srv, http.MethodPatch, "/api/v1/flows/"+created.ID+"/nodes/"+message.ID, token,
		map[string]interface{}{"field": "message", "value": "Olá!"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Olá!", updated.Data["message"])

	var view queries.FlowView
	status = doJSON(t, srv, http.MethodGet, "/api/v1/flows/"+created.ID, token, nil, &view)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, view.Nodes, 2)
	assert.Len(t, view.Edges, 1)

	// deleting the message node cascades its edge
	status = doJSON(t, srv, http.MethodDelete, "/api/v1/flows/"+created.ID+"/nodes/"+message.ID, token, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, srv, http.MethodGet, "/api/v1/flows/"+created.ID, token, nil, &view)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, view.Nodes, 1)
	assert.Empty(t, view.Edges)
}

func TestMoveAndDuplicateNode(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	node := addNode(t, srv, token, created.ID, "message")

	var moved queries.NodeView
	status := doJSON(t, srv, http.MethodPut, "/api/v1/flows/"+created.ID+"/nodes/"+node.ID+"/position", token,
		map[string]float64{"x": 10, "y": 20}, &moved)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, flow.Position{X: 10, Y: 20}, moved.Position)

	var duplicate queries.NodeView
	status = doJSON(t, srv, http.MethodPost, "/api/v1/flows/"+created.ID+"/nodes/"+node.ID+"/duplicate", token, nil, &duplicate)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, node.ID, duplicate.ID)
	assert.Equal(t, flow.Position{X: 60, Y: 70}, duplicate.Position)
}

func TestBranchTagging(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	condition := addNode(t, srv, token, created.ID, "condition")
	yes := addNode(t, srv, token, created.ID, "message")

	var edge queries.EdgeView
	status := doJSON(t, srv, http.MethodPost, "/api/v1/flows/"+created.ID+"/edges", token,
		map[string]string{"source": condition.ID, "target": yes.ID}, &edge)
	require.Equal(t, http.StatusCreated, status)

	var tagged queries.EdgeView
	status = doJSON(t, srv, http.MethodPut, "/api/v1/flows/"+created.ID+"/edges/"+edge.ID+"/branch", token,
		map[string]string{"branch": "true"}, &tagged)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "true", tagged.Branch)

	// the validator rejects anything but true/false before dispatch
	status = doJSON(t, srv, http.MethodPut, "/api/v1/flows/"+created.ID+"/edges/"+edge.ID+"/branch", token,
		map[string]string{"branch": "maybe"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestButtonsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	node := addNode(t, srv, token, created.ID, "buttons")

	var button flow.Button
	status := doJSON(t, srv, http.MethodPost, "/api/v1/flows/"+created.ID+"/nodes/"+node.ID+"/buttons", token, nil, &button)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Botão 1", button.Label)

	var after queries.NodeView
	status = doJSON(t, srv, http.MethodDelete,
		fmt.Sprintf("/api/v1/flows/%s/nodes/%s/buttons/%s", created.ID, node.ID, button.ID), token, nil, &after)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, after.Data["buttons"])
}

func TestExportImportRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "Original")
	addNode(t, srv, token, created.ID, "trigger")

	var snap flow.Snapshot
	status := doJSON(t, srv, http.MethodGet, "/api/v1/flows/"+created.ID+"/export", token, nil, &snap)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, snap.Nodes, 1)

	var imported queries.FlowView
	status = doJSON(t, srv, http.MethodPost, "/api/v1/flows/import", token, snap, &imported)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, created.ID, imported.ID)
	assert.Len(t, imported.Nodes, 1)
}

func TestInspectorSchemaAndPalette(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	node := addNode(t, srv, token, created.ID, "trigger")

	var schema queries.InspectorSchema
	status := doJSON(t, srv, http.MethodGet,
		"/api/v1/flows/"+created.ID+"/nodes/"+node.ID+"/schema", token, nil, &schema)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "trigger", schema.Type)
	require.NotEmpty(t, schema.Fields)
	assert.Equal(t, "label", schema.Fields[0].Name)

	var palette []queries.PaletteEntry
	status = doJSON(t, srv, http.MethodGet, "/api/v1/palette", token, nil, &palette)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, palette, len(flow.NodeTypes()))
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	addNode(t, srv, token, created.ID, "message")

	var report queries.ValidationReport
	status := doJSON(t, srv, http.MethodGet, "/api/v1/flows/"+created.ID+"/validate", token, nil, &report)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Warnings, "Fluxo sem nó de gatilho")
}

func TestOtherUsersFlowsReadAsNotFound(t *testing.T) {
	srv := newTestServer(t)
	owner := tokenFor(t, "user-1")
	intruder := tokenFor(t, "user-2")

	created := createFlow(t, srv, owner, "Privado")

	status := doJSON(t, srv, http.MethodGet, "/api/v1/flows/"+created.ID, intruder, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCanvasGestures(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	base := "/api/v1/flows/" + created.ID + "/canvas"

	status := doJSON(t, srv, http.MethodPost, base+"/session", token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var dropped queries.NodeView
	status = doJSON(t, srv, http.MethodPost, base+"/drop", token, map[string]interface{}{
		"payload": map[string]string{"nodeType": "message", "label": "Boas-vindas"},
		"x":       40,
		"y":       80,
	}, &dropped)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Boas-vindas", dropped.Label)

	// a drop without a payload is swallowed, not an error
	status = doJSON(t, srv, http.MethodPost, base+"/drop", token,
		map[string]interface{}{"x": 1, "y": 2}, nil)
	assert.Equal(t, http.StatusOK, status)

	target := addNode(t, srv, token, created.ID, "delay")
	var edge queries.EdgeView
	status = doJSON(t, srv, http.MethodPost, base+"/connect", token,
		map[string]string{"source": dropped.ID, "target": target.ID}, &edge)
	require.Equal(t, http.StatusCreated, status)

	// releasing over empty canvas connects nothing
	status = doJSON(t, srv, http.MethodPost, base+"/connect", token,
		map[string]string{"source": dropped.ID, "target": ""}, nil)
	assert.Equal(t, http.StatusOK, status)

	var state struct {
		Selection string `json:"selection"`
		Viewport  struct {
			Zoom float64 `json:"zoom"`
		} `json:"viewport"`
	}
	status = doJSON(t, srv, http.MethodPut, base+"/selection", token,
		map[string]string{"nodeId": dropped.ID}, &state)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, dropped.ID, state.Selection)

	status = doJSON(t, srv, http.MethodPut, base+"/viewport", token,
		map[string]float64{"x": -5, "y": 12, "zoom": 1.5}, &state)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.5, state.Viewport.Zoom)

	var collapse struct {
		Collapsed bool `json:"collapsed"`
	}
	status = doJSON(t, srv, http.MethodPost, base+"/nodes/"+dropped.ID+"/collapse", token, nil, &collapse)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, collapse.Collapsed)

	status = doJSON(t, srv, http.MethodDelete, base+"/session", token, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestDeletingNodeClearsSessionState(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "user-1")

	created := createFlow(t, srv, token, "")
	node := addNode(t, srv, token, created.ID, "message")
	base := "/api/v1/flows/" + created.ID + "/canvas"

	status := doJSON(t, srv, http.MethodPut, base+"/selection", token,
		map[string]string{"nodeId": node.ID}, nil)
	require.Equal(t, http.StatusOK, status)
	status = doJSON(t, srv, http.MethodPost, base+"/nodes/"+node.ID+"/collapse", token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, srv, http.MethodDelete, "/api/v1/flows/"+created.ID+"/nodes/"+node.ID, token, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	// reopening the session must not reference the deleted node
	var state struct {
		Selection string `json:"selection"`
	}
	status = doJSON(t, srv, http.MethodPost, base+"/session", token, nil, &state)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, state.Selection)
}
