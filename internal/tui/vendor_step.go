package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/vendor"
)

var fieldLabels = [fieldCount]string{
	"Vendor Name",
	"Minimum Order (e.g., $50 minimum)",
	"Email (optional)",
}

func (a *App) cycleField(delta int) {
	a.form[a.formFocus].Blur()
	a.formFocus = (a.formFocus + delta + fieldCount) % fieldCount
	a.form[a.formFocus].Focus()
}

func (a *App) submitVendor() {
	v, similar, err := a.session.AddVendor(
		a.form[fieldName].Value(),
		a.form[fieldMinOrder].Value(),
		a.form[fieldEmail].Value(),
	)
	if err != nil {
		var verr *vendor.ValidationError
		if errors.As(err, &verr) {
			a.setNotice(noticeError, verr.Message)
		} else {
			a.setNotice(noticeError, err.Error())
		}
		a.cycleTo(fieldName)
		return
	}
	a.setNotice(noticeSuccess, fmt.Sprintf("Vendor '%s' added successfully!", v.Name))
	if len(similar) > 0 {
		names := make([]string, len(similar))
		for i, s := range similar {
			names[i] = s.Name
		}
		a.hint = fmt.Sprintf("%s looks similar to existing vendor %s", v.Name, strings.Join(names, ", "))
	}
	for i := range a.form {
		a.form[i].SetValue("")
	}
	a.cycleTo(fieldName)
}

func (a *App) cycleTo(field int) {
	a.form[a.formFocus].Blur()
	a.formFocus = field
	a.form[field].Focus()
}

func (a *App) renderVendorStep() string {
	var b strings.Builder
	b.WriteString(stepHeaderStyle.Render("Step 1: Add Vendor Details"))
	b.WriteString("\n")
	for i := range a.form {
		label := labelStyle
		if a.form[i].Focused() {
			label = focusLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(a.form[i].View())
		b.WriteString("\n")
	}
	b.WriteString(a.renderNotice())

	vendors := a.session.Vendors()
	if len(vendors) == 0 {
		return b.String()
	}
	list := table.New("ID", "Name", "Min Order", "Email")
	for _, v := range vendors {
		list.Rows = append(list.Rows, []string{strconv.Itoa(v.ID), v.Name, v.MinOrder, v.Email})
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Current Vendors"))
	b.WriteString("\n")
	b.WriteString(renderTable(list, len(vendors)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("n  Next: Upload Price Sheets →"))
	return b.String()
}
