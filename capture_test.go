package plenary

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCapture_RootScopeCapturesEverythingWithoutFilter(t *testing.T) {
	t.Parallel()

	c := New()
	errA := &typeAErr{"a"}
	errB := &typeBErr{"b"}

	require.NoError(t, c.Run(fail(errA)))
	require.NoError(t, c.Run(fail(errB)))
	require.NoError(t, c.Run(func() error { return nil }))

	assert.Equal(t, []error{errA, errB}, c.Errors())
	for _, w := range c.Buffer() {
		assert.Same(t, c.Root(), w.Context)
		assert.NotEmpty(t, w.Stack)
	}
}

func TestCapture_FilterLetsUnmatchedErrorsPropagate(t *testing.T) {
	t.Parallel()

	c := New(WithFilter(Type[aFamily]()))
	errA := &typeAErr{"a"}
	errSub := &typeASubErr{typeAErr{"sub"}}
	errB := &typeBErr{"b"}

	require.NoError(t, c.Run(fail(errA)))
	require.NoError(t, c.Run(fail(errSub)))

	got := c.Run(fail(errB))
	require.Same(t, errB, got, "unmatched error must come back unchanged")

	assert.False(t, c.Contains(errB))
	assert.Equal(t, []error{errA, errSub}, c.Errors())
}

func TestCapture_ContextFilterInheritance(t *testing.T) {
	t.Parallel()

	errA := &typeAErr{"a"}
	errB := &typeBErr{"b"}
	errC := &typeCErr{"c"}

	tests := []struct {
		name     string
		opts     []ContextOption
		captured []bool // for errA, errB, errC
	}{
		{"inherit capture filter", nil, []bool{true, false, false}},
		{"inherit plus own", []ContextOption{Only(Type[*typeBErr]())}, []bool{true, true, false}},
		{"own only", []ContextOption{Only(Type[*typeBErr]()), NoInherit()}, []bool{false, true, false}},
		{"no inherit no filter", []ContextOption{NoInherit()}, []bool{true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(WithFilter(Type[*typeAErr]()))
			x := c.Context(tt.name, tt.opts...)
			for i, err := range []error{errA, errB, errC} {
				out := x.Run(fail(err))
				if tt.captured[i] {
					assert.NoError(t, out, "%v should be captured", err)
				} else {
					assert.Same(t, err, out, "%v should propagate", err)
				}
			}
		})
	}
}

func TestCapture_KindFilterMatchesDescendants(t *testing.T) {
	t.Parallel()

	c := New()
	x := c.Context("io", Only(Is(KindUnavailable)))

	timeout := KindTimeout.New("dial")
	notFound := KindNotFound.New("user")

	require.NoError(t, x.Run(fail(timeout)))
	require.Same(t, notFound, x.Run(fail(notFound)))

	assert.True(t, c.Match(Is(KindTimeout)))
	assert.True(t, c.Match(Is(KindUnavailable)))
	assert.True(t, c.Match(Is(KindFailure)))
	assert.False(t, c.Match(Is(KindNotFound)))
	assert.True(t, c.Contains(timeout))
	assert.False(t, c.Contains(KindTimeout), "a kind is not a buffered instance")
}

func TestCapture_RaiseEmptyIsNil(t *testing.T) {
	t.Parallel()

	require.NoError(t, New().Raise())
}

func TestCapture_RaiseSingleReturnsOriginal(t *testing.T) {
	t.Parallel()

	c := New()
	errA := &typeAErr{"only"}
	require.NoError(t, c.Context("one").Run(fail(errA)))

	got := c.Raise()
	assert.Same(t, errA, got)
}

func TestCapture_RaiseManyReturnsAggregateInOrder(t *testing.T) {
	t.Parallel()

	c := New()
	errs := []error{&typeAErr{"1"}, &typeBErr{"2"}, &typeASubErr{typeAErr{"3"}}}
	for i, err := range errs {
		x := c.Context("item", Fields("idx", i))
		require.NoError(t, x.Run(fail(err)))
	}

	got := c.Raise()
	var agg *AggregateError
	require.ErrorAs(t, got, &agg)
	require.Equal(t, 3, agg.Len())
	assert.Equal(t, errs, agg.Errors())
	for i := range errs {
		assert.Same(t, errs[i], agg.At(i).Err)
		assert.Equal(t, i, agg.At(i).Context.Fields()["idx"])
	}

	assert.True(t, ContainsType[*typeAErr](agg))
	assert.True(t, ContainsType[*typeBErr](agg))
	assert.True(t, ContainsType[*typeASubErr](agg))
	assert.True(t, ContainsType[aFamily](agg))
	assert.False(t, ContainsType[*typeCErr](agg))

	for _, err := range errs {
		assert.ErrorIs(t, got, err)
		assert.True(t, agg.Contains(err))
	}
	assert.False(t, agg.Contains(&typeAErr{"1"}), "membership by instance is identity, not equality")
}

func TestCapture_RaiseDrainsBuffer(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.Run(fail(&typeAErr{"x"})))
	require.NoError(t, c.Run(fail(&typeBErr{"y"})))

	require.Error(t, c.Raise())
	assert.Equal(t, 0, c.Len())
	assert.NoError(t, c.Raise(), "second Raise must be a no-op")

	errC := &typeCErr{"z"}
	require.NoError(t, c.Run(fail(errC)))
	assert.Same(t, errC, c.Raise())
}

func TestCapture_AddAndAddFront(t *testing.T) {
	t.Parallel()

	c := New()
	x := c.Context("manual")
	first, second, front := errors.New("first"), errors.New("second"), errors.New("front")

	c.Add(first, nil, nil)
	c.Add(second, Stack{{Function: "f"}}, x)
	c.AddFront(front, nil, nil)
	c.Add(nil, nil, x)

	buf := c.Buffer()
	require.Len(t, buf, 3)
	assert.Equal(t, []error{front, first, second}, c.Errors())
	assert.Nil(t, buf[0].Context)
	assert.Same(t, x, buf[2].Context)
	assert.Equal(t, "f", buf[2].Stack.Top().Function)
}

func TestCapture_ContainsIsByInstance(t *testing.T) {
	t.Parallel()

	c := New()
	inner := errors.New("inner")
	outer := fmt.Errorf("outer: %w", inner)
	require.NoError(t, c.Run(fail(outer)))

	assert.True(t, c.Contains(outer))
	assert.False(t, c.Contains(inner), "a wrapped error is not itself buffered")
	assert.True(t, c.Match(Is(inner)))
	assert.False(t, c.Contains(nil))

	require.NoError(t, c.Run(fail(errors.New("second"))))
	var agg *AggregateError
	require.ErrorAs(t, c.Raise(), &agg)
	assert.True(t, agg.Contains(outer))
	assert.False(t, agg.Contains(inner))
}

func TestCapture_MatchAndContainsType(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.Run(fail(KindInvalid.Wrap(&typeBErr{"bad"}, "parse"))))

	assert.True(t, c.Match(Type[*typeBErr]()))
	assert.True(t, c.Match(Is(KindFailure)))
	assert.False(t, c.Match(Type[*typeAErr]()))
	assert.False(t, c.Match(nil))
	assert.True(t, ContainsType[*typeBErr](c))
	assert.False(t, ContainsType[*typeCErr](c))
}

func TestCapture_FilterAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	c := New(WithFilter(Type[*typeAErr]()))
	f := c.Filter()
	require.Len(t, f, 1)
	f[0] = nil
	assert.NotNil(t, c.Filter()[0])

	x := c.Context("x", Only(Type[*typeBErr]()))
	assert.Len(t, x.Filter(), 2)
}

func TestCapture_LogsCaptureAndPassThrough(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(WithLogger(zap.New(core)), WithFilter(Type[*typeAErr]()))
	x := c.Context("job")

	require.NoError(t, x.Run(fail(&typeAErr{"a"})))
	require.Error(t, x.Run(fail(&typeBErr{"b"})))
	require.Error(t, c.Raise())

	captured := logs.FilterMessage("captured error").All()
	require.Len(t, captured, 1)
	assert.Equal(t, "job", captured[0].ContextMap()["context"])
	assert.EqualValues(t, 1, captured[0].ContextMap()["buffered"])

	assert.Equal(t, 1, logs.FilterMessage("error passed through scope").Len())
	assert.Equal(t, 1, logs.FilterMessage("raising buffered errors").Len())
}

func TestCapture_NilLoggerKeepsNop(t *testing.T) {
	t.Parallel()

	c := New(WithLogger(nil))
	require.NotNil(t, c.log)
	require.NoError(t, c.Run(fail(errors.New("x"))))
}
