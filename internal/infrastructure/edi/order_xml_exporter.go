// Package edi exporta la orden de compra como documento XML para intercambio
// con los sistemas de los proveedores.
package edi

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/resto-inventario-api/internal/application/purchasing"
	"github.com/jhoicas/resto-inventario-api/internal/domain/entity"
)

// Namespace propio del documento de orden de compra.
const nsOrder = "urn:resto-inventario:purchase-order:v1"

var _ purchasing.OrderXMLExporter = (*OrderXMLExporter)(nil)

// OrderXMLExporter serializa órdenes de compra a XML con etree.
type OrderXMLExporter struct{}

// NewOrderXMLExporter construye el exportador.
func NewOrderXMLExporter() *OrderXMLExporter { return &OrderXMLExporter{} }

// ExportOrderXML genera el documento XML de la orden y devuelve sus bytes.
func (e *OrderXMLExporter) ExportOrderXML(order *entity.PurchaseOrder) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("edi: orden nula")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("PurchaseOrder")
	root.CreateAttr("xmlns", nsOrder)
	root.CreateAttr("id", order.ID)

	root.CreateElement("OrderNumber").SetText(order.OrderNumber)
	root.CreateElement("Status").SetText(order.Status)
	root.CreateElement("TenantID").SetText(order.TenantID)
	root.CreateElement("OutletID").SetText(order.OutletID)
	if order.SupplierID != "" {
		root.CreateElement("SupplierID").SetText(order.SupplierID)
	}
	root.CreateElement("IssueDate").SetText(order.CreatedAt.Format("2006-01-02"))
	root.CreateElement("ExpectedDelivery").SetText(order.ExpectedDelivery.Format("2006-01-02"))

	lines := root.CreateElement("Lines")
	for _, l := range order.Lines {
		el := lines.CreateElement("Line")
		el.CreateAttr("id", l.ID)
		el.CreateElement("ItemName").SetText(l.ItemName)
		el.CreateElement("Quantity").SetText(l.Quantity.String())
		el.CreateElement("Unit").SetText(l.Unit)
		el.CreateElement("EstimatedUnitCost").SetText(l.EstimatedUnitCost.StringFixed(2))
		el.CreateElement("TotalCost").SetText(l.TotalCost.StringFixed(2))
	}

	root.CreateElement("TotalCost").SetText(order.TotalCost.StringFixed(2))
	if order.Notes != "" {
		root.CreateElement("Notes").SetText(order.Notes)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("edi: serializar orden: %w", err)
	}
	return out, nil
}
