package db

import (
	"context"

	"github.com/eximware/erp-data-api/query"
)

// Analytics statements are fixed text with only the reporting window and
// row limit bound as parameters. They aggregate over sales orders and
// their child item rows, which are not part of the searchable catalog.

const topCustomersStatement = "SELECT `customer`, `customer_name`, " +
	"COUNT(*) AS `order_count`, SUM(`grand_total`) AS `total_value` " +
	"FROM `tabSales Order` " +
	"WHERE DATE(`transaction_date`) >= ? AND DATE(`transaction_date`) <= ? " +
	"GROUP BY `customer`, `customer_name` " +
	"HAVING SUM(`grand_total`) >= ? " +
	"ORDER BY `total_value` DESC LIMIT ?"

const mostSoldItemsStatement = "SELECT `item`.`item_code`, `item`.`item_name`, " +
	"SUM(`item`.`qty`) AS `total_qty`, SUM(`item`.`amount`) AS `total_amount` " +
	"FROM `tabSales Order Item` AS `item` " +
	"JOIN `tabSales Order` AS `so` ON `item`.`parent` = `so`.`name` " +
	"WHERE DATE(`so`.`transaction_date`) >= ? AND DATE(`so`.`transaction_date`) <= ? " +
	"GROUP BY `item`.`item_code`, `item`.`item_name` " +
	"ORDER BY `total_qty` DESC LIMIT ?"

const ordersByTerritoryStatement = "SELECT `territory`, " +
	"COUNT(*) AS `order_count`, SUM(`grand_total`) AS `total_value` " +
	"FROM `tabSales Order` " +
	"WHERE DATE(`transaction_date`) >= ? AND DATE(`transaction_date`) <= ? " +
	"GROUP BY `territory` " +
	"ORDER BY `order_count` DESC"

const topCustomersByCountStatement = "SELECT `customer`, `customer_name`, " +
	"COUNT(*) AS `order_count`, SUM(`grand_total`) AS `total_value`, " +
	"MAX(`transaction_date`) AS `last_order_date` " +
	"FROM `tabSales Order` " +
	"WHERE `customer` IS NOT NULL " +
	"AND DATE(`transaction_date`) >= ? AND DATE(`transaction_date`) <= ? " +
	"GROUP BY `customer`, `customer_name` " +
	"ORDER BY `order_count` DESC LIMIT ?"

const ordersByItemStatement = "SELECT DISTINCT `so`.`name`, `so`.`customer`, " +
	"`so`.`customer_name`, `so`.`transaction_date`, `so`.`status`, " +
	"`so`.`grand_total`, `so`.`currency`, " +
	"`item`.`item_code`, `item`.`item_name`, `item`.`qty`, `item`.`rate`, `item`.`amount` " +
	"FROM `tabSales Order` AS `so` " +
	"JOIN `tabSales Order Item` AS `item` ON `item`.`parent` = `so`.`name` " +
	"WHERE `item`.`item_code` = ? " +
	"ORDER BY `so`.`modified` DESC LIMIT ?"

const duplicateCustomersStatement = "SELECT `customer_name`, " +
	"COUNT(*) AS `count`, " +
	"GROUP_CONCAT(`name` SEPARATOR ', ') AS `customer_ids` " +
	"FROM `tabCustomer` " +
	"GROUP BY `customer_name` " +
	"HAVING COUNT(*) > 1 " +
	"ORDER BY `count` DESC"

// TopCustomersByOrderValue ranks customers by summed order value inside the
// reporting window, keeping only customers at or above minValue.
func (db *Db) TopCustomersByOrderValue(ctx context.Context, window query.DateSpan, minValue float64, limit int) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, topCustomersStatement,
		[]interface{}{window.StartDate(), window.LastDate(), minValue, limit})
}

// MostSoldItems ranks items by total quantity sold inside the reporting
// window.
func (db *Db) MostSoldItems(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, mostSoldItemsStatement,
		[]interface{}{window.StartDate(), window.LastDate(), limit})
}

// OrdersByTerritory breaks order volume down by territory inside the
// reporting window.
func (db *Db) OrdersByTerritory(ctx context.Context, window query.DateSpan) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, ordersByTerritoryStatement,
		[]interface{}{window.StartDate(), window.LastDate()})
}

// TopCustomersByOrderCount ranks customers by how many orders they placed
// inside the reporting window.
func (db *Db) TopCustomersByOrderCount(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, topCustomersByCountStatement,
		[]interface{}{window.StartDate(), window.LastDate(), limit})
}

// OrdersByItem lists the most recent orders containing a specific item.
func (db *Db) OrdersByItem(ctx context.Context, itemCode string, limit int) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, ordersByItemStatement, []interface{}{itemCode, limit})
}

// DuplicateCustomers finds customer names registered more than once, with
// the colliding record identifiers concatenated per name.
func (db *Db) DuplicateCustomers(ctx context.Context) ([]map[string]interface{}, error) {
	return db.queryRows(ctx, duplicateCustomersStatement, nil)
}
