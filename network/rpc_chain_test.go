package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcTestServer creates a mock JSON-RPC server for testing RPCClient methods.
// handlers maps RPC method names to handler functions that receive the request params
// and return either a result or an rpcError.
func rpcTestServer(t *testing.T, handlers map[string]func(params []interface{}) (interface{}, *rpcError)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler, ok := handlers[req.Method]
		if !ok {
			t.Errorf("unexpected RPC method: %s", req.Method)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		result, rpcErr := handler(req.Params)
		resp := rpcResponse{ID: req.ID}
		if rpcErr != nil {
			resp.Error = rpcErr
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			resp.Result, _ = json.Marshal(result)
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

const testAddr = "1111111111111111111114oLvT2"

func TestListUnspent(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"listunspent": func(params []interface{}) (interface{}, *rpcError) {
			require.Len(t, params, 3)
			assert.Equal(t, float64(0), params[0])
			assert.Equal(t, float64(9999999), params[1])
			addrs, ok := params[2].([]interface{})
			require.True(t, ok)
			assert.Equal(t, []interface{}{testAddr}, addrs)

			return []map[string]interface{}{
				{
					"txid":          "aa11",
					"vout":          0,
					"amount":        0.001,
					"scriptPubKey":  "76a914deadbeef88ac",
					"address":       testAddr,
					"confirmations": 6,
				},
				{
					"txid":          "bb22",
					"vout":          1,
					"amount":        88,
					"scriptPubKey":  "76a914cafebabe88ac",
					"address":       testAddr,
					"confirmations": 0,
				},
			}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	utxos, err := client.ListUnspent(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, utxos, 2)

	assert.Equal(t, "aa11", utxos[0].TxID)
	assert.Equal(t, uint32(0), utxos[0].Vout)
	assert.Equal(t, uint64(100000), utxos[0].Amount)
	assert.Equal(t, int64(6), utxos[0].Confirmations)

	assert.Equal(t, "bb22", utxos[1].TxID)
	assert.Equal(t, uint32(1), utxos[1].Vout)
	assert.Equal(t, uint64(8800000000), utxos[1].Amount)
	assert.Equal(t, "76a914cafebabe88ac", utxos[1].ScriptPubKey)
}

func TestListUnspentWholeWallet(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"listunspent": func(params []interface{}) (interface{}, *rpcError) {
			assert.Len(t, params, 2)
			return []interface{}{}, nil
		},
	})
	defer server.Close()

	utxos, err := NewRPCClient(RPCConfig{URL: server.URL}).ListUnspent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, utxos)
}

func TestListUnspentRPCError(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"listunspent": func(params []interface{}) (interface{}, *rpcError) {
			return nil, &rpcError{Code: -18, Message: "Requested wallet does not exist or is not loaded"}
		},
	})
	defer server.Close()

	_, err := NewRPCClient(RPCConfig{URL: server.URL}).ListUnspent(context.Background())
	assert.ErrorIs(t, err, ErrRPC)
}

func TestGetBestBlockHeight(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"getblockcount": func(params []interface{}) (interface{}, *rpcError) {
			assert.Empty(t, params)
			return 840000, nil
		},
	})
	defer server.Close()

	height, err := NewRPCClient(RPCConfig{URL: server.URL}).GetBestBlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(840000), height)
}

func TestGetBestBlockHeightInvalid(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"getblockcount": func(params []interface{}) (interface{}, *rpcError) {
			return "tall", nil
		},
	})
	defer server.Close()

	_, err := NewRPCClient(RPCConfig{URL: server.URL}).GetBestBlockHeight(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetBlockHash(t *testing.T) {
	const hash = "1f1037762db00882d3353b8d9dcfd52fc93cbc2d694c62f1ecd6a209cf9d30d0"
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"getblockhash": func(params []interface{}) (interface{}, *rpcError) {
			require.Len(t, params, 1)
			assert.Equal(t, float64(0), params[0])
			return hash, nil
		},
	})
	defer server.Close()

	got, err := NewRPCClient(RPCConfig{URL: server.URL}).GetBlockHash(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, hash, got)
}

func TestGetBlockHashEmpty(t *testing.T) {
	server := rpcTestServer(t, map[string]func(params []interface{}) (interface{}, *rpcError){
		"getblockhash": func(params []interface{}) (interface{}, *rpcError) {
			return "", nil
		},
	})
	defer server.Close()

	_, err := NewRPCClient(RPCConfig{URL: server.URL}).GetBlockHash(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestBtcToSat(t *testing.T) {
	assert.Equal(t, uint64(0), btcToSat(0))
	assert.Equal(t, uint64(1), btcToSat(0.00000001))
	assert.Equal(t, uint64(30000000), btcToSat(0.3))
	assert.Equal(t, uint64(8800000000), btcToSat(88))
}
