// Package export serializes the fitted classifier and preprocessing
// parameters into the portable artifact bundle inference consumers load.
package export

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ONNX graph constants. The exported graph is the standard linear-classifier
// shape: MatMul -> Add -> Sigmoid over a single flat float input.
const (
	onnxIRVersion    = 7
	onnxOpsetVersion = 12
	onnxFloat        = 1 // TensorProto.DataType FLOAT

	// ONNXInputName is the declared graph input
	ONNXInputName = "float_input"
	// ONNXOutputName is the positive-class probability output
	ONNXOutputName = "probabilities"
)

// onnx.proto field numbers used below.
const (
	modelIRVersion       = 1
	modelProducerName    = 2
	modelProducerVersion = 3
	modelGraph           = 7
	modelOpsetImport     = 8

	opsetDomain  = 1
	opsetVersion = 2

	graphNode        = 1
	graphName        = 2
	graphInitializer = 5
	graphInput       = 11
	graphOutput      = 12

	nodeInput  = 1
	nodeOutput = 2
	nodeName   = 3
	nodeOpType = 4

	tensorDims      = 1
	tensorDataType  = 2
	tensorFloatData = 4
	tensorName      = 8

	valueInfoName = 1
	valueInfoType = 2

	typeTensorType  = 1
	tensorElemType  = 1
	tensorShape     = 2
	shapeDim        = 1
	dimValue        = 1
	dimParam        = 2
)

// LinearModelONNX serializes a linear classifier with the given coefficients
// and intercept as an ONNX model whose declared input width is len(coef).
func LinearModelONNX(coef []float64, intercept float64) ([]byte, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("onnx export: empty coefficient vector")
	}
	d := int64(len(coef))

	graph := appendBytesField(nil, graphName, []byte("endpoint_data_classifier"))

	// Input: float_input [N, d]
	graph = appendBytesField(graph, graphInput, valueInfo(ONNXInputName, "N", d))

	// Initializers: coefficient matrix [d, 1] and intercept [1]
	graph = appendBytesField(graph, graphInitializer, floatTensor("coefficients", []int64{d, 1}, coef))
	graph = appendBytesField(graph, graphInitializer, floatTensor("intercept", []int64{1}, []float64{intercept}))

	// MatMul -> Add -> Sigmoid
	graph = appendBytesField(graph, graphNode, node("matmul", "MatMul", []string{ONNXInputName, "coefficients"}, []string{"score"}))
	graph = appendBytesField(graph, graphNode, node("add_bias", "Add", []string{"score", "intercept"}, []string{"logit"}))
	graph = appendBytesField(graph, graphNode, node("sigmoid", "Sigmoid", []string{"logit"}, []string{ONNXOutputName}))

	// Output: probabilities [N, 1]
	graph = appendBytesField(graph, graphOutput, valueInfo(ONNXOutputName, "N", 1))

	var opset []byte
	opset = appendBytesField(opset, opsetDomain, nil) // default ONNX domain
	opset = protowire.AppendTag(opset, opsetVersion, protowire.VarintType)
	opset = protowire.AppendVarint(opset, onnxOpsetVersion)

	var model []byte
	model = protowire.AppendTag(model, modelIRVersion, protowire.VarintType)
	model = protowire.AppendVarint(model, onnxIRVersion)
	model = appendBytesField(model, modelProducerName, []byte("endpoint-classifier"))
	model = appendBytesField(model, modelProducerVersion, []byte("v1"))
	model = appendBytesField(model, modelOpsetImport, opset)
	model = appendBytesField(model, modelGraph, graph)

	return model, nil
}

// node encodes a NodeProto.
func node(name, opType string, inputs, outputs []string) []byte {
	var b []byte
	for _, in := range inputs {
		b = appendBytesField(b, nodeInput, []byte(in))
	}
	for _, out := range outputs {
		b = appendBytesField(b, nodeOutput, []byte(out))
	}
	b = appendBytesField(b, nodeName, []byte(name))
	b = appendBytesField(b, nodeOpType, []byte(opType))
	return b
}

// floatTensor encodes a TensorProto with packed float32 data.
func floatTensor(name string, dims []int64, values []float64) []byte {
	var b []byte
	for _, dim := range dims {
		b = protowire.AppendTag(b, tensorDims, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(dim))
	}
	b = protowire.AppendTag(b, tensorDataType, protowire.VarintType)
	b = protowire.AppendVarint(b, onnxFloat)

	packed := make([]byte, 0, 4*len(values))
	for _, v := range values {
		packed = protowire.AppendFixed32(packed, math.Float32bits(float32(v)))
	}
	b = appendBytesField(b, tensorFloatData, packed)
	b = appendBytesField(b, tensorName, []byte(name))
	return b
}

// valueInfo encodes a float tensor ValueInfoProto with shape [batchParam, width].
func valueInfo(name, batchParam string, width int64) []byte {
	batchDim := appendBytesField(nil, dimParam, []byte(batchParam))
	widthDim := protowire.AppendTag(nil, dimValue, protowire.VarintType)
	widthDim = protowire.AppendVarint(widthDim, uint64(width))

	var shape []byte
	shape = appendBytesField(shape, shapeDim, batchDim)
	shape = appendBytesField(shape, shapeDim, widthDim)

	var tensorType []byte
	tensorType = protowire.AppendTag(tensorType, tensorElemType, protowire.VarintType)
	tensorType = protowire.AppendVarint(tensorType, onnxFloat)
	tensorType = appendBytesField(tensorType, tensorShape, shape)

	typeProto := appendBytesField(nil, typeTensorType, tensorType)

	var b []byte
	b = appendBytesField(b, valueInfoName, []byte(name))
	b = appendBytesField(b, valueInfoType, typeProto)
	return b
}

// appendBytesField appends a length-delimited field.
func appendBytesField(b []byte, num protowire.Number, val []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, val)
}
