package project

import "net/url"

type ProjectsResponse struct {
	Projects []*Project `json:"projects"`
	Stats    Stats      `json:"stats"`
}

// FilterFromQuery reads ?search=&status=&employee=&priority=.
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		EmployeeID: q.Get("employee"),
		Priority:   q.Get("priority"),
	}.Normalize()
}
