package export

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestLinearModelONNX_EmptyCoefficients(t *testing.T) {
	_, err := LinearModelONNX(nil, 0)
	assert.Error(t, err)
}

func TestLinearModelONNX_Deterministic(t *testing.T) {
	coef := []float64{0.5, -1.25, 3}

	a, err := LinearModelONNX(coef, 0.75)
	require.NoError(t, err)
	b, err := LinearModelONNX(coef, 0.75)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestLinearModelONNX_TopLevelFields(t *testing.T) {
	model, err := LinearModelONNX([]float64{1, 2}, -0.5)
	require.NoError(t, err)

	fields := decodeFields(t, model)
	assert.Equal(t, uint64(onnxIRVersion), fields.varints[modelIRVersion])
	assert.Equal(t, "endpoint-classifier", string(fields.bytes[modelProducerName][0]))
	require.Len(t, fields.bytes[modelGraph], 1)
	require.Len(t, fields.bytes[modelOpsetImport], 1)

	opset := decodeFields(t, fields.bytes[modelOpsetImport][0])
	assert.Equal(t, uint64(onnxOpsetVersion), opset.varints[opsetVersion])
}

func TestLinearModelONNX_GraphShape(t *testing.T) {
	coef := []float64{0.5, -1.25, 3}
	model, err := LinearModelONNX(coef, 0.75)
	require.NoError(t, err)

	fields := decodeFields(t, model)
	graph := decodeFields(t, fields.bytes[modelGraph][0])

	// MatMul, Add, Sigmoid in order
	require.Len(t, graph.bytes[graphNode], 3)
	ops := make([]string, 0, 3)
	for _, raw := range graph.bytes[graphNode] {
		n := decodeFields(t, raw)
		ops = append(ops, string(n.bytes[nodeOpType][0]))
	}
	assert.Equal(t, []string{"MatMul", "Add", "Sigmoid"}, ops)

	// coefficient initializer carries the float32 values in order
	require.Len(t, graph.bytes[graphInitializer], 2)
	coefTensor := decodeFields(t, graph.bytes[graphInitializer][0])
	assert.Equal(t, "coefficients", string(coefTensor.bytes[tensorName][0]))
	assert.Equal(t, coef, unpackFloats(t, coefTensor.bytes[tensorFloatData][0]))

	require.Len(t, graph.bytes[graphInput], 1)
	require.Len(t, graph.bytes[graphOutput], 1)
	input := decodeFields(t, graph.bytes[graphInput][0])
	assert.Equal(t, ONNXInputName, string(input.bytes[valueInfoName][0]))
}

// decodedFields collects one protobuf message level: varint fields by number
// and length-delimited fields by number in wire order.
type decodedFields struct {
	varints map[protowire.Number]uint64
	bytes   map[protowire.Number][][]byte
}

func decodeFields(t *testing.T, b []byte) decodedFields {
	t.Helper()
	out := decodedFields{
		varints: make(map[protowire.Number]uint64),
		bytes:   make(map[protowire.Number][][]byte),
	}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.Positive(t, n)
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			require.Positive(t, n)
			out.varints[num] = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			require.Positive(t, n)
			out.bytes[num] = append(out.bytes[num], v)
			b = b[n:]
		default:
			t.Fatalf("unexpected wire type %v for field %d", typ, num)
		}
	}
	return out
}

func unpackFloats(t *testing.T, packed []byte) []float64 {
	t.Helper()
	require.Zero(t, len(packed)%4)
	out := make([]float64, 0, len(packed)/4)
	for len(packed) > 0 {
		bits, n := protowire.ConsumeFixed32(packed)
		require.Positive(t, n)
		out = append(out, float64(math.Float32frombits(uint32(bits))))
		packed = packed[n:]
	}
	return out
}
