package service

import (
	"github.com/Dan9191/credit-dashboard/internal/dataview"
	"github.com/Dan9191/credit-dashboard/internal/models"
)

func (s *Service) purposeCount(_ models.FilterState) (*models.Chart, error) {
	counts, err := dataview.ValueCounts(s.table, models.ColPurpose)
	if err != nil {
		return nil, err
	}
	order, err := dataview.Unique(s.table, models.ColPurpose)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindBar,
		Title:  "Credit count by purpose",
		XTitle: "Credit purpose",
		YTitle: "Count",
		Empty:  len(counts) == 0,
		Counts: inOrder(counts, order),
	}, nil
}

func (s *Service) amountHistogram(_ models.FilterState) (*models.Chart, error) {
	return s.histogram(s.table, models.ColAmount, AmountBins, "Requested amounts", "Requested amount", "Count")
}

func (s *Service) interestHistogram(_ models.FilterState) (*models.Chart, error) {
	return s.histogram(s.table, models.ColInterest, InterestBins, "Interest rate distribution", "Interest rate (%)", "Number of credits")
}

func (s *Service) histogram(t dataview.Table, column string, bins int, title, x, y string) (*models.Chart, error) {
	hist, err := dataview.Histogram(t, column, bins)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindHistogram,
		Title:  title,
		XTitle: x,
		YTitle: y,
		Empty:  len(hist) == 0,
		Bins:   hist,
	}, nil
}

func (s *Service) purposeStateStacked(_ models.FilterState) (*models.Chart, error) {
	stacks, err := dataview.CrossCounts(s.table, models.ColPurpose, models.ColState)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindStackedBar,
		Title:  "Credits by state and purpose",
		XTitle: "Credit purpose",
		YTitle: "Count",
		Empty:  len(stacks) == 0,
		Stacks: stacks,
	}, nil
}

func (s *Service) latePaymentPie(fs models.FilterState) (*models.Chart, error) {
	purpose := fs.LatePaymentPurpose
	if purpose == "" {
		purposes, err := dataview.Unique(s.table, models.ColPurpose)
		if err != nil {
			return nil, err
		}
		if len(purposes) > 0 {
			purpose = purposes[0]
		}
	}
	view, err := dataview.FilterByCategories(s.table, models.ColPurpose, dataview.NewSet(purpose))
	if err != nil {
		return nil, err
	}
	counts, err := dataview.ValueCounts(view, models.ColLatePayment)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindPie,
		Title:  "Credits by late-payment record: " + purpose,
		Empty:  view.Rows() == 0,
		Counts: counts,
	}, nil
}

func (s *Service) amountDurationScatter(_ models.FilterState) (*models.Chart, error) {
	return s.scatter(s.table)
}

func (s *Service) filteredScatter(fs models.FilterState) (*models.Chart, error) {
	view, err := s.purposeStateView(fs)
	if err != nil {
		return nil, err
	}
	return s.scatter(view)
}

func (s *Service) scatter(t dataview.Table) (*models.Chart, error) {
	points, err := dataview.Points(t, models.ColDuration, models.ColAmount, models.ColState)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindScatter,
		Title:  "Requested amount vs credit duration",
		XTitle: "Credit duration (months)",
		YTitle: "Requested amount",
		Empty:  len(points) == 0,
		Points: points,
	}, nil
}

func (s *Service) tenureAmountLine(_ models.FilterState) (*models.Chart, error) {
	means, err := dataview.GroupMeanOrdered(s.table, models.ColTenure, models.ColAmount, models.TenureOrder)
	if err != nil {
		return nil, err
	}
	for i := range means {
		means[i].Label = models.TenureLabels[means[i].Group]
	}
	return &models.Chart{
		Kind:   models.KindLine,
		Title:  "Mean requested amount by customer tenure",
		XTitle: "Customer tenure",
		YTitle: "Mean requested amount",
		Empty:  len(means) == 0,
		Means:  means,
	}, nil
}

func (s *Service) amountByPurposeBox(fs models.FilterState) (*models.Chart, error) {
	view, err := s.purposeStateView(fs)
	if err != nil {
		return nil, err
	}
	boxes, err := dataview.BoxStats(view, models.ColPurpose, models.ColAmount)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:   models.KindBox,
		Title:  "Requested amount distribution by purpose",
		XTitle: "Credit purpose",
		YTitle: "Requested amount",
		Empty:  len(boxes) == 0,
		Boxes:  boxes,
	}, nil
}

func (s *Service) correlationHeatmap(fs models.FilterState) (*models.Chart, error) {
	view, err := dataview.FilterAll(s.table, selection(models.ColDependents, fs.Dependents)...)
	if err != nil {
		return nil, err
	}
	m, err := dataview.CorrelationMatrix(view, models.CorrelationColumns)
	if err != nil {
		return nil, err
	}
	return &models.Chart{
		Kind:        models.KindHeatmap,
		Title:       "Correlation between variables",
		Empty:       view.Rows() == 0,
		Correlation: m,
	}, nil
}

func (s *Service) purposeStateView(fs models.FilterState) (dataview.Table, error) {
	filters := append(selection(models.ColPurpose, fs.Purposes), selection(models.ColState, fs.States)...)
	return dataview.FilterAll(s.table, filters...)
}

// inOrder arranges counts by the given value order
func inOrder(counts []models.ValueCount, order []string) []models.ValueCount {
	byValue := make(map[string]models.ValueCount, len(counts))
	for _, c := range counts {
		byValue[c.Value] = c
	}
	out := make([]models.ValueCount, 0, len(counts))
	for _, v := range order {
		if c, ok := byValue[v]; ok {
			out = append(out, c)
		}
	}
	return out
}
