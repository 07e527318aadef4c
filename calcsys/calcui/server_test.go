package calcui

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bincalc.org/bincalc/binval"
	"bincalc.org/bincalc/calcsys"
	"bincalc.org/bincalc/internal/testutil"
)

func TestGetDefault(t *testing.T) {
	lAddr, _ := startServing(t)
	code, body := get(t, mkURL(lAddr, "/"))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `id="operand1" name="operand1" value=""`)
	require.NotContains(t, body, "autofocus")
}

func TestGetParameter(t *testing.T) {
	lAddr, _ := startServing(t)
	code, body := get(t, mkURL(lAddr, "/?operand1=111"))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `value="111"`)
	require.Contains(t, body, "autofocus")
	// keypad appends digits to the first operand
	require.Contains(t, body, `href="/?operand1=1110"`)
}

func TestPostForm(t *testing.T) {
	lAddr, _ := startServing(t)
	tcs := []struct {
		A, Op, B string
		Result   string
	}{
		{"111", "+", "111", "1110"},
		{"111", "&", "111", "111"},
		{"11", "&", "1010", "10"},
		{"111", "|", "111", "111"},
		{"11", "|", "1010", "1011"},
		{"1010", "*", "101", "110010"},
		{"1101", "*", "1011", "10001111"},
		{"12", "+", "1", "1"},
	}
	for _, tc := range tcs {
		t.Run(tc.A+tc.Op+tc.B, func(t *testing.T) {
			code, body := postForm(t, mkURL(lAddr, "/"), url.Values{
				"operand1": {tc.A},
				"operator": {tc.Op},
				"operand2": {tc.B},
			})
			require.Equal(t, http.StatusOK, code)
			require.Contains(t, body, fmt.Sprintf(`<output id="result">%s</output>`, tc.Result))
			require.Contains(t, body, fmt.Sprintf(`<span id="operand1">%s</span>`, tc.A))
		})
	}
}

func TestPostUnknownOperator(t *testing.T) {
	lAddr, _ := startServing(t)
	code, body := postForm(t, mkURL(lAddr, "/"), url.Values{
		"operand1": {"101"},
		"operator": {"-"},
		"operand2": {"1"},
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, body, `id="error"`)
	require.Contains(t, body, "unknown operator")
	require.Contains(t, body, `value="101"`)
	require.Contains(t, body, `id="operand2" name="operand2" value="1"`)
	// the rejected operator is not an option, so none is preselected.
	require.NotContains(t, body, "selected")
}

func TestHistoryShown(t *testing.T) {
	lAddr, _ := startServing(t)
	postForm(t, mkURL(lAddr, "/"), url.Values{
		"operand1": {"1101"},
		"operator": {"*"},
		"operand2": {"1011"},
	})
	code, body := get(t, mkURL(lAddr, "/"))
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `id="history"`)
	require.Contains(t, body, "10001111")
}

func TestComputeJSON(t *testing.T) {
	lAddr, _ := startServing(t)
	q := url.Values{"a": {"1010"}, "op": {"*"}, "b": {"101"}}
	code, body := get(t, mkURL(lAddr, "/v1/compute?"+q.Encode()))
	require.Equal(t, http.StatusOK, code, body)
	var calc calcsys.Calculation
	require.NoError(t, json.Unmarshal([]byte(body), &calc))
	require.Equal(t, "110010", calc.Result.String())
	require.Equal(t, binval.OpMul, calc.Op)

	code, body = get(t, mkURL(lAddr, "/v1/calc/"+calc.ID.String()))
	require.Equal(t, http.StatusOK, code, body)
	var actual calcsys.Calculation
	require.NoError(t, json.Unmarshal([]byte(body), &actual))
	require.Equal(t, calc.ID, actual.ID)
}

func TestComputeJSONOpName(t *testing.T) {
	lAddr, _ := startServing(t)
	q := url.Values{"a": {"11"}, "op": {"or"}, "b": {"1010"}}
	code, body := get(t, mkURL(lAddr, "/v1/compute?"+q.Encode()))
	require.Equal(t, http.StatusOK, code, body)
	require.Contains(t, body, `"result":"1011"`)
}

func TestComputeJSONErrors(t *testing.T) {
	lAddr, _ := startServing(t)
	tcs := []struct {
		Query url.Values
		Code  int
	}{
		{url.Values{"a": {"1"}, "op": {"-"}, "b": {"1"}}, http.StatusBadRequest},
		{url.Values{"a": {"12"}, "op": {"+"}, "b": {"1"}, "strict": {"true"}}, http.StatusBadRequest},
		{url.Values{"a": {""}, "op": {"+"}, "b": {"1"}, "strict": {"true"}}, http.StatusBadRequest},
		{url.Values{"a": {"12"}, "op": {"+"}, "b": {"1"}}, http.StatusOK},
	}
	for i, tc := range tcs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			code, body := get(t, mkURL(lAddr, "/v1/compute?"+tc.Query.Encode()))
			require.Equal(t, tc.Code, code, body)
		})
	}
}

func TestCalcNotFound(t *testing.T) {
	lAddr, _ := startServing(t)
	code, _ := get(t, mkURL(lAddr, "/v1/calc/"+strings.Repeat("-", 43)))
	require.Equal(t, http.StatusNotFound, code)
	code, _ = get(t, mkURL(lAddr, "/v1/calc/nope"))
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHistoryJSON(t *testing.T) {
	ctx := testutil.Context(t)
	lAddr, sys := startServing(t)
	for _, x := range []string{"1", "10", "11"} {
		_, err := sys.Compute(ctx, binval.OpAdd, binval.Parse(x), binval.One())
		require.NoError(t, err)
	}
	code, body := get(t, mkURL(lAddr, "/v1/history?n=2"))
	require.Equal(t, http.StatusOK, code, body)
	var calcs []calcsys.Calculation
	require.NoError(t, json.Unmarshal([]byte(body), &calcs))
	require.Len(t, calcs, 2)
	require.Equal(t, "100", calcs[0].Result.String())

	code, _ = get(t, mkURL(lAddr, "/v1/history?n=-1"))
	require.Equal(t, http.StatusBadRequest, code)
}

func mkURL(addr net.Addr, p string) string {
	return fmt.Sprintf("http://%s%s", addr.String(), p)
}

func get(t testing.TB, u string) (int, string) {
	t.Log("url", u)
	resp, err := http.Get(u)
	require.NoError(t, err)
	return readResp(t, resp)
}

func postForm(t testing.TB, u string, form url.Values) (int, string) {
	t.Log("url", u, form)
	resp, err := http.PostForm(u, form)
	require.NoError(t, err)
	return readResp(t, resp)
}

func readResp(t testing.TB, resp *http.Response) (int, string) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func startServing(t testing.TB) (net.Addr, *calcsys.System) {
	ctx := testutil.Context(t)
	sys := calcsys.NewTestSys(t)
	srv := New(sys)
	lis := testutil.Listen(t)
	go srv.Serve(ctx, lis)
	return lis.Addr(), sys
}
