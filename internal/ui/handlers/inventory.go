package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dualcaster "github.com/dualcaster-deals/dualcaster/app"
	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
	"github.com/dualcaster-deals/dualcaster/app/internal/ui/client"
)

func (h *HandlerService) HandleInventoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "inventory", h.pageData(r, map[string]any{
		"Search": r.URL.Query().Get("search"),
	}))
}

// HandleInventoryRows renders the inventory table body with the active
// search/foil filters applied
func (h *HandlerService) HandleInventoryRows(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	resp, err := h.apiClient(r).GetInventory(r.Context(), client.InventoryParams{
		Page:   page,
		Search: r.URL.Query().Get("search"),
		IsFoil: queryFoil(r),
	})
	if err != nil {
		h.renderAPIError(w, r, err, r.URL.RequestURI(), "#inventory-rows")
		return
	}

	h.renderFragment(w, r, "inventory_rows.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": nextPageURL("/ui-api/inventory", r.URL.Query(), page),
	})
}

// HandleAddInventoryItem adds a card to the inventory and re-renders the
// first page of the table
func (h *HandlerService) HandleAddInventoryItem(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseInt(r.FormValue("card-id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Card ID must be a number.", false, "", "")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		h.renderErrorAlert(w, r, "Quantity must be at least 1.", false, "", "")
		return
	}

	purchasePrice := 0.0
	if raw := r.FormValue("purchase-price"); raw != "" {
		purchasePrice, err = strconv.ParseFloat(raw, 64)
		if err != nil || purchasePrice < 0 {
			h.renderErrorAlert(w, r, "Purchase price must be a positive number.", false, "", "")
			return
		}
	}

	api := h.apiClient(r)
	_, err = api.AddInventoryItem(r.Context(), client.AddInventoryItemRequest{
		CardID:        cardID,
		Condition:     r.FormValue("condition"),
		IsFoil:        r.FormValue("is-foil") == "true",
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderInventoryFirstPage(w, r, api)
}

// HandleUpdateInventoryItem changes the quantity of an inventory row and
// re-renders the first page of the table
func (h *HandlerService) HandleUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid inventory item.", false, "", "")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		h.renderErrorAlert(w, r, "Quantity must be at least 1.", false, "", "")
		return
	}

	api := h.apiClient(r)
	_, err = api.UpdateInventoryItem(r.Context(), id, client.UpdateInventoryItemRequest{
		Quantity: &quantity,
	})
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderInventoryFirstPage(w, r, api)
}

// HandleDeleteInventoryItem removes an inventory row and re-renders the
// first page of the table
func (h *HandlerService) HandleDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderErrorAlert(w, r, "Invalid inventory item.", false, "", "")
		return
	}

	api := h.apiClient(r)
	if err := api.DeleteInventoryItem(r.Context(), id); err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderInventoryFirstPage(w, r, api)
}

func (h *HandlerService) renderInventoryFirstPage(w http.ResponseWriter, r *http.Request, api *client.Client) {
	resp, err := api.GetInventory(r.Context(), client.InventoryParams{})
	if err != nil {
		h.renderAPIError(w, r, err, "/ui-api/inventory", "#inventory-rows")
		return
	}

	h.renderFragment(w, r, "inventory_rows.html", map[string]any{
		"Items":   resp.Items,
		"Total":   resp.Total,
		"HasMore": resp.HasMore,
		"NextURL": "/ui-api/inventory?page=2",
	})
}

// HandleImportInventory accepts a bulk import file upload. The file is
// validated locally against the import schema before anything is sent, so a
// malformed file fails without a backend round trip.
func (h *HandlerService) HandleImportInventory(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	if err := r.ParseMultipartForm(dualcaster.MaxImportRequestSize); err != nil {
		h.renderErrorAlert(w, r, "Import file is too large (5MB maximum).", false, "", "")
		return
	}

	file, _, err := r.FormFile("import-file")
	if err != nil {
		h.renderErrorAlert(w, r, "Please choose a file to import.", false, "", "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, dualcaster.MaxImportRequestSize))
	if err != nil {
		reqLogger.Error("Failed to read import upload", slog.String("error", err.Error()))
		h.renderErrorAlert(w, r, "Failed to read the uploaded file.", false, "", "")
		return
	}

	if err := client.ValidateImportFile(data); err != nil {
		reqLogger.Info("Import file rejected", slog.String("error", err.Error()))
		h.renderErrorAlert(w, r, "The import file is not valid: "+err.Error(), false, "", "")
		return
	}

	result, err := h.apiClient(r).ImportInventory(r.Context(), data)
	if err != nil {
		h.renderAPIError(w, r, err, "", "")
		return
	}

	h.renderFragment(w, r, "import_result.html", result)
}
