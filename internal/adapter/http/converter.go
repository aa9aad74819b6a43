// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"strings"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// ToSearchParams converts a validated SearchFlightsRequest to domain.SearchParams.
// An absent passenger count means one traveller; the class default is applied
// by the use case.
func ToSearchParams(req *SearchFlightsRequest) domain.SearchParams {
	passengers := 1
	if req.Passengers != nil {
		passengers = *req.Passengers
	}
	params := domain.SearchParams{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    passengers,
	}
	if class, err := domain.ParseTravelClass(req.Class); err == nil {
		params.Class = class
	}
	return params
}

// ToFilterState converts a FilterDTO to domain.FilterState.
// A nil DTO restricts nothing.
func ToFilterState(dto *FilterDTO) domain.FilterState {
	if dto == nil {
		return domain.FilterState{}
	}

	state := domain.FilterState{
		SelectedAirlines: dto.Airlines,
		Stops:            dto.Stops,
	}

	if dto.PriceRange != nil {
		state.PriceRange = &domain.PriceRange{
			Min: dto.PriceRange.Min,
			Max: dto.PriceRange.Max,
		}
	}

	for _, c := range dto.Classes {
		if class, err := domain.ParseTravelClass(c); err == nil {
			state.Classes = append(state.Classes, class)
		}
	}

	if tr := dto.DepartureTimeRange; tr != nil && tr.Start != "" && tr.End != "" {
		state.DepartureWindow = &domain.TimeWindow{Start: tr.Start, End: tr.End}
	}

	return state
}

// ToSortKey converts a sort string to domain.SortKey; unknown values sort by price.
func ToSortKey(sortBy string) domain.SortKey {
	switch strings.ToLower(sortBy) {
	case "best", "best_value":
		return domain.SortByBestValue
	default:
		return domain.ParseSortKey(strings.ToLower(sortBy))
	}
}

// ToSearchOptions converts presentation fields to usecase.SearchOptions.
func ToSearchOptions(filters *FilterDTO, sortBy string) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToFilterState(filters),
		SortBy:  ToSortKey(sortBy),
	}
}

// ToAlertRequest converts a CreateAlertRequest to usecase.AlertRequest.
func ToAlertRequest(req *CreateAlertRequest) usecase.AlertRequest {
	return usecase.AlertRequest{
		FlightID:     req.FlightID,
		TargetPrice:  req.TargetPrice,
		CurrentPrice: req.CurrentPrice,
		Currency:     strings.ToUpper(strings.TrimSpace(req.Currency)),
		Contact: domain.ContactInfo{
			Email:              req.Contact.Email,
			Phone:              req.Contact.Phone,
			EmailNotifications: req.Contact.EmailNotifications,
			SMSNotifications:   req.Contact.SMSNotifications,
		},
	}
}
