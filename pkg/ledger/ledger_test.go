package ledger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, lines ...string) (*ledger.Ledger, error) {
	t.Helper()
	txt := ledger.Header + "\n" + strings.Join(lines, "\n") + "\n"
	return ledger.Parse(strings.NewReader(txt))
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "error should be *gn.Error")
	return gnErr.Code
}

func TestParse(t *testing.T) {
	l, err := parse(t,
		"dstd1\tVSUB000001\tdss1-dss10\t\t",
		"dstd2\tVSUB000002\t\tdssv1-dssv5\tdsv1-dsv2",
		"dstd3\tVSUB000003\t\tdssv6-dssv8,dssv10-dssv12\tdsv3-dsv3",
	)
	require.NoError(t, err)
	require.Len(t, l.Entries, 3)

	e := l.Entries[2]
	assert.Equal(t, 3, e.Study)
	assert.Equal(t, "VSUB000003", e.SubmissionID)
	assert.Equal(t, []ledger.Range{{6, 8}, {10, 12}}, e.Calls)
	assert.Equal(t, ledger.SV, e.Kind())
	assert.Equal(t, ledger.SNP, l.Entries[0].Kind())
	assert.True(t, l.Has("VSUB000002"))
	assert.False(t, l.Has("VSUB000009"))
}

func TestParseEmpty(t *testing.T) {
	l, err := ledger.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, l.Entries)
	for _, n := range ledger.Namespaces {
		assert.Equal(t, 1, l.Next(n), n.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		msg   string
		lines []string
		code  gn.ErrorCode
	}{
		{"bad study", []string{"dst1\tVSUB000001\tdss1-dss2\t\t"}, errcode.LedgerFormatError},
		{"bad submission", []string{"dstd1\tVSUB01\tdss1-dss2\t\t"}, errcode.LedgerFormatError},
		{"wrong prefix", []string{"dstd1\tVSUB000001\tdssv1-dssv2\t\t"}, errcode.LedgerFormatError},
		{"leading zero", []string{"dstd1\tVSUB000001\tdss01-dss2\t\t"}, errcode.LedgerFormatError},
		{"too many fields", []string{"dstd1\tVSUB000001\tdss1-dss2\t\t\t\t"}, errcode.LedgerFormatError},
		{"low > high", []string{"dstd1\tVSUB000001\tdss5-dss2\t\t"}, errcode.LedgerRangeError},
		{"both groups", []string{"dstd1\tVSUB000001\tdss1-dss2\tdssv1-dssv2\tdsv1-dsv1"}, errcode.LedgerNamespaceError},
		{"neither group", []string{"dstd1\tVSUB000001\t\t\t"}, errcode.LedgerNamespaceError},
		{"calls without regions", []string{"dstd1\tVSUB000001\t\tdssv1-dssv2\t"}, errcode.LedgerNamespaceError},
		{"duplicate submission", []string{
			"dstd1\tVSUB000001\tdss1-dss2\t\t",
			"dstd2\tVSUB000001\tdss3-dss4\t\t",
		}, errcode.LedgerDuplicateSubmissionError},
		{"historical overlap", []string{
			"dstd1\tVSUB000001\tdss1-dss5\t\t",
			"dstd2\tVSUB000002\tdss5-dss9\t\t",
		}, errcode.LedgerCollisionError},
		{"duplicate study", []string{
			"dstd1\tVSUB000001\tdss1-dss5\t\t",
			"dstd1\tVSUB000002\tdss6-dss9\t\t",
		}, errcode.LedgerCollisionError},
		{"overlap inside entry", []string{
			"dstd1\tVSUB000001\tdss1-dss5,dss3-dss7\t\t",
		}, errcode.LedgerCollisionError},
		{"range value beyond int", []string{
			"dstd1\tVSUB000001\tdss1-dss99999999999999999999\t\t",
		}, errcode.LedgerFormatError},
		{"study value beyond int", []string{
			"dstd99999999999999999999\tVSUB000001\tdss1-dss2\t\t",
		}, errcode.LedgerFormatError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := parse(t, v.lines...)
			assert.Equal(t, v.code, errCode(t, err))
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		msg string
		txt string
	}{
		{"no header", "dstd1\tVSUB000001\tdss1-dss2\t\t\n"},
		{"truncated header", "study\tsubmission\tdss\n"},
		{"blank first line", "\n" + ledger.Header + "\n"},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := ledger.Parse(strings.NewReader(v.txt))
			assert.Equal(t, errcode.LedgerFormatError, errCode(t, err))
		})
	}

	l, err := ledger.Parse(strings.NewReader(ledger.Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, l.Entries)
}

func TestAllocateNearIntLimit(t *testing.T) {
	l, err := parse(t, "dstd1\tVSUB000001\tdss1-dss9223372036854775805\t\t")
	require.NoError(t, err)

	a, err := l.Allocate("VSUB000002", ledger.SNP, ledger.Counts{Variants: 2})
	require.NoError(t, err)
	assert.Equal(t,
		ledger.Range{Start: 9223372036854775806, End: 9223372036854775807},
		a.Variants)

	_, err = l.Allocate("VSUB000002", ledger.SNP, ledger.Counts{Variants: 3})
	assert.Equal(t, errcode.LedgerImpossibleRangeError, errCode(t, err))
	assert.ErrorIs(t, err.(*gn.Error).Err, ledger.ErrImpossibleRange)

	require.NoError(t, l.Commit(a.Entry()))
	_, err = l.Allocate("VSUB000003", ledger.SNP, ledger.Counts{Variants: 1})
	assert.Equal(t, errcode.LedgerImpossibleRangeError, errCode(t, err))
}

func TestNextIndependentOfOrder(t *testing.T) {
	l, err := parse(t,
		"dstd7\tVSUB000007\tdss11-dss20\t\t",
		"dstd2\tVSUB000002\tdss1-dss10\t\t",
		"dstd3\tVSUB000003\t\tdssv1-dssv4\tdsv1-dsv2",
	)
	require.NoError(t, err)
	assert.Equal(t, 8, l.Next(ledger.Study))
	assert.Equal(t, 21, l.Next(ledger.Variant))
	assert.Equal(t, 5, l.Next(ledger.Call))
	assert.Equal(t, 3, l.Next(ledger.Region))
}

func TestAllocate(t *testing.T) {
	t.Run("empty ledger starts at 1", func(t *testing.T) {
		l := ledger.New()
		a, err := l.Allocate("VSUB000001", ledger.SNP, ledger.Counts{Variants: 3})
		require.NoError(t, err)
		assert.Equal(t, 1, a.Study)
		assert.Equal(t, ledger.Range{Start: 1, End: 3}, a.Variants)
		assert.True(t, a.Calls.IsZero())
	})

	t.Run("continues after dss1-dss10", func(t *testing.T) {
		l, err := parse(t, "dstd1\tVSUB000001\tdss1-dss10\t\t")
		require.NoError(t, err)
		a, err := l.Allocate("VSUB000002", ledger.SNP, ledger.Counts{Variants: 5})
		require.NoError(t, err)
		assert.Equal(t, 2, a.Study)
		assert.Equal(t, ledger.Range{Start: 11, End: 15}, a.Variants)
	})

	t.Run("sv block", func(t *testing.T) {
		l, err := parse(t, "dstd4\tVSUB000001\t\tdssv1-dssv10\tdsv1-dsv3")
		require.NoError(t, err)
		a, err := l.Allocate("VSUB000002", ledger.SV,
			ledger.Counts{Calls: 4, Regions: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, a.Study)
		assert.Equal(t, ledger.Range{Start: 11, End: 14}, a.Calls)
		assert.Equal(t, ledger.Range{Start: 4, End: 5}, a.Regions)
		assert.Equal(t, 4, a.Calls.Len())
	})

	t.Run("re-run is fatal", func(t *testing.T) {
		l, err := parse(t, "dstd1\tVSUB000001\tdss1-dss10\t\t")
		require.NoError(t, err)
		_, err = l.Allocate("VSUB000001", ledger.SNP, ledger.Counts{Variants: 1})
		assert.Equal(t, errcode.LedgerDuplicateSubmissionError, errCode(t, err))
	})

	t.Run("bad submission id", func(t *testing.T) {
		l := ledger.New()
		_, err := l.Allocate("", ledger.SNP, ledger.Counts{Variants: 1})
		assert.Equal(t, errcode.SubmissionIDError, errCode(t, err))
	})

	t.Run("impossible counts", func(t *testing.T) {
		l := ledger.New()
		_, err := l.Allocate("VSUB000001", ledger.SNP, ledger.Counts{})
		assert.Equal(t, errcode.LedgerImpossibleRangeError, errCode(t, err))
		_, err = l.Allocate("VSUB000001", ledger.SV, ledger.Counts{Calls: 2})
		assert.Equal(t, errcode.LedgerImpossibleRangeError, errCode(t, err))
		_, err = l.Allocate("VSUB000001", ledger.SV,
			ledger.Counts{Variants: 1, Calls: 2, Regions: 1})
		assert.ErrorIs(t, err.(*gn.Error).Err, ledger.ErrImpossibleRange)
	})
}

func TestDisjointAcrossAllocations(t *testing.T) {
	l := ledger.New()
	seen := make(map[ledger.Namespace]map[int]bool)
	for _, n := range ledger.Namespaces {
		seen[n] = make(map[int]bool)
	}
	subs := []string{"VSUB000001", "VSUB000002", "VSUB000003", "VSUB000004"}
	for i, sub := range subs {
		kind, counts := ledger.SNP, ledger.Counts{Variants: i + 2}
		if i%2 == 1 {
			kind, counts = ledger.SV, ledger.Counts{Calls: i + 1, Regions: 1}
		}
		a, err := l.Allocate(sub, kind, counts)
		require.NoError(t, err)
		require.NoError(t, l.Commit(a.Entry()))

		for _, n := range ledger.Namespaces {
			r := a.Range(n)
			for v := r.Start; v <= r.End && !r.IsZero(); v++ {
				assert.False(t, seen[n][v], "%s%d minted twice", n, v)
				seen[n][v] = true
			}
		}
		_, err = l.Allocate(sub, kind, counts)
		assert.Equal(t, errcode.LedgerDuplicateSubmissionError, errCode(t, err))
	}
	assert.Empty(t, l.Gaps())
}

func TestCommitCollision(t *testing.T) {
	l, err := parse(t, "dstd1\tVSUB000001\tdss1-dss10\t\t")
	require.NoError(t, err)
	err = l.Commit(ledger.Entry{
		Study:        2,
		SubmissionID: "VSUB000002",
		Variants:     []ledger.Range{{Start: 10, End: 12}},
	})
	assert.Equal(t, errcode.LedgerCollisionError, errCode(t, err))
	assert.Len(t, l.Entries, 1)
}

func TestCommitBetweenRanges(t *testing.T) {
	l, err := parse(t,
		"dstd1\tVSUB000001\tdss1-dss10,dss40-dss50\t\t",
		"dstd2\tVSUB000002\tdss20-dss30\t\t",
	)
	require.NoError(t, err)

	tests := []struct {
		msg  string
		sub  string
		rng  ledger.Range
		fail bool
	}{
		{"inside a hole", "VSUB000003", ledger.Range{Start: 11, End: 19}, false},
		{"reaches a later range", "VSUB000004", ledger.Range{Start: 31, End: 45}, true},
		{"spans a whole range", "VSUB000005", ledger.Range{Start: 15, End: 35}, true},
		{"after everything", "VSUB000006", ledger.Range{Start: 51, End: 60}, false},
	}

	for i, v := range tests {
		err = l.Commit(ledger.Entry{
			Study:        10 + i,
			SubmissionID: v.sub,
			Variants:     []ledger.Range{v.rng},
		})
		if v.fail {
			assert.Equal(t, errcode.LedgerCollisionError, errCode(t, err), v.msg)
			continue
		}
		assert.NoError(t, err, v.msg)
	}
}

func TestGaps(t *testing.T) {
	l, err := parse(t,
		"dstd1\tVSUB000001\tdss1-dss10\t\t",
		"dstd3\tVSUB000002\tdss15-dss20\t\t",
		"dstd4\tVSUB000003\tdss11-dss12\t\t",
	)
	require.NoError(t, err)
	gaps := l.Gaps()
	assert.Equal(t, []ledger.Gap{
		{Namespace: ledger.Study, From: 2, To: 2},
		{Namespace: ledger.Variant, From: 13, To: 14},
	}, gaps)
	// gaps do not change the next counter
	assert.Equal(t, 21, l.Next(ledger.Variant))
}

func TestWriteTo(t *testing.T) {
	lines := []string{
		"dstd1\tVSUB000001\tdss1-dss10\t\t",
		"dstd2\tVSUB000002\t\tdssv1-dssv5,dssv7-dssv9\tdsv1-dsv2",
	}
	l, err := parse(t, lines...)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = l.WriteTo(&buf)
	require.NoError(t, err)
	want := ledger.Header + "\n" + strings.Join(lines, "\n") + "\n"
	assert.Equal(t, want, buf.String())

	again, err := ledger.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, l.Entries, again.Entries)
}
