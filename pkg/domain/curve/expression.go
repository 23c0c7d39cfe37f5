// 指示: miu200521358
package curve

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"gopkg.in/Knetic/govaluate.v3"
)

const (
	// expressionVariable は式中で比率を参照する変数名。
	expressionVariable = "x"
)

// expressionProbeTimes は生成時に評価を試す比率。
var expressionProbeTimes = []float64{0, 0.5, 1, 1.5, 2}

// ExpressionCurve は数式で定義した曲線。変数xに比率を渡して評価する。
type ExpressionCurve struct {
	source     string
	expression *govaluate.EvaluableExpression
}

// NewExpressionCurve は数式から曲線を生成する。代表値で評価して数値を返すことを確認する。
func NewExpressionCurve(source string) (*ExpressionCurve, error) {
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(source, expressionFunctions())
	if err != nil {
		return nil, fmt.Errorf("%w: 数式の解析に失敗しました: %s: %v", ErrInvalidCurve, source, err)
	}
	for _, name := range expression.Vars() {
		if name != expressionVariable {
			return nil, fmt.Errorf("%w: 未知の変数です: %s", ErrInvalidCurve, name)
		}
	}
	c := &ExpressionCurve{source: source, expression: expression}
	for _, t := range expressionProbeTimes {
		if _, err := c.evaluate(t); err != nil {
			return nil, fmt.Errorf("%w: 数式の評価に失敗しました: %s: %v", ErrInvalidCurve, source, err)
		}
	}
	return c, nil
}

// Source は元の数式を返す。
func (c *ExpressionCurve) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Evaluate は比率tの値を返す。評価できない場合は0を返す。
func (c *ExpressionCurve) Evaluate(t float64) float64 {
	value, err := c.evaluate(t)
	if err != nil {
		return 0
	}
	return value
}

func (c *ExpressionCurve) evaluate(t float64) (float64, error) {
	if c == nil || c.expression == nil {
		return 0, fmt.Errorf("数式が未設定です")
	}
	result, err := c.expression.Evaluate(map[string]interface{}{expressionVariable: t})
	if err != nil {
		return 0, err
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("数値以外の結果です: %T", result)
	}
	if !mmath.IsFiniteFloat(value) {
		return 0, fmt.Errorf("有限でない結果です: %v", value)
	}
	return value, nil
}

func expressionFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"min":   binaryFunction("min", math.Min),
		"max":   binaryFunction("max", math.Max),
		"pow":   binaryFunction("pow", math.Pow),
		"sqrt":  unaryFunction("sqrt", math.Sqrt),
		"abs":   unaryFunction("abs", math.Abs),
		"clamp": clampFunction,
	}
}

func unaryFunction(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(arguments ...interface{}) (interface{}, error) {
		values, err := floatArguments(name, arguments, 1)
		if err != nil {
			return nil, err
		}
		return fn(values[0]), nil
	}
}

func binaryFunction(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(arguments ...interface{}) (interface{}, error) {
		values, err := floatArguments(name, arguments, 2)
		if err != nil {
			return nil, err
		}
		return fn(values[0], values[1]), nil
	}
}

func clampFunction(arguments ...interface{}) (interface{}, error) {
	values, err := floatArguments("clamp", arguments, 3)
	if err != nil {
		return nil, err
	}
	return mmath.ClampFloat(values[0], values[1], values[2]), nil
}

func floatArguments(name string, arguments []interface{}, count int) ([]float64, error) {
	if len(arguments) != count {
		return nil, fmt.Errorf("%sの引数の数が不正です: got=%d want=%d", name, len(arguments), count)
	}
	values := make([]float64, count)
	for i, argument := range arguments {
		value, ok := argument.(float64)
		if !ok {
			return nil, fmt.Errorf("%sの引数%dが数値ではありません: %T", name, i, argument)
		}
		values[i] = value
	}
	return values, nil
}
